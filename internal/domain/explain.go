package domain

import (
	"fmt"
	"strings"
)

// ExplainMode selects the register of an explanation.
type ExplainMode string

// Explanation modes.
const (
	ExplainSimple       ExplainMode = "simple"
	ExplainProfessional ExplainMode = "professional"
)

// ParseExplainMode maps user input to a mode. Empty input means simple.
func ParseExplainMode(s string) (ExplainMode, error) {
	switch ExplainMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExplainSimple:
		return ExplainSimple, nil
	case ExplainProfessional:
		return ExplainProfessional, nil
	default:
		return "", fmt.Errorf("%w: %q (want simple or professional)", ErrInvalidExplainMode, s)
	}
}

// Question is one of the canned follow-up questions.
type Question string

// Canned questions. QuestionOther carries free-form text.
const (
	QuestionNone       Question = ""
	QuestionWhyFlagged Question = "why_flagged"
	QuestionChecks     Question = "what_checks"
	QuestionExamples   Question = "similar_examples"
	QuestionOther      Question = "other"
)

var questionAliases = map[string]Question{
	"why_flagged":              QuestionWhyFlagged,
	"why is this flagged?":     QuestionWhyFlagged,
	"what_checks":              QuestionChecks,
	"what checks should i do?": QuestionChecks,
	"similar_examples":         QuestionExamples,
	"show similar examples":    QuestionExamples,
}

// ParseQuestion maps an identifier or the canned wording to a question.
func ParseQuestion(s string) Question {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return QuestionNone
	}
	if q, ok := questionAliases[s]; ok {
		return q
	}
	return QuestionOther
}

// NarrationPrompt is what an explanation narrator rewrites into prose.
type NarrationPrompt struct {
	Mode       ExplainMode
	Prediction Prediction
	Draft      string
	Question   string
}
