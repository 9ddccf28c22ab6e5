// Package analyzer produces the rule-based linguistic report and the fallback verdict
// used when no trained model is available.
package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
	"github.com/kailas-cloud/verity/internal/nlp/lexicon"
	"github.com/kailas-cloud/verity/internal/nlp/textstat"
)

// Thresholds of the report labels.
const (
	sentimentThreshold  = 0.1
	subjectiveThreshold = 0.10
	emotionalThreshold  = 0.15
	toneMatchThreshold  = 2
	defaultReadingScore = 50
)

// Analyzer is the training-free heuristic scorer. The zero value is not usable; use New.
// Analyzer is stateless after construction and safe for concurrent use.
type Analyzer struct {
	topics []topicStems
}

// New creates an Analyzer with stemmed topic keywords.
func New() *Analyzer {
	return &Analyzer{topics: stemTopics()}
}

// Analyze computes the report for raw text. Blank text yields the empty report.
// A non-nil error wraps domain.ErrAnalysisDegraded; the returned report is then empty.
func (a *Analyzer) Analyze(text string) (r report.Report, err error) {
	if strings.TrimSpace(text) == "" {
		return report.Report{}, nil
	}
	defer func() {
		if p := recover(); p != nil {
			r = report.Report{}
			err = fmt.Errorf("%w: %v", domain.ErrAnalysisDegraded, p)
		}
	}()

	tokens := lexicon.Tokens(text)
	subjectivity := lexicon.SubjectivityOf(tokens)

	r.ReadingScore, r.ReadingLevel = readability(text)
	r.Sentiment = sentiment(tokens)
	r.Objectivity = report.MostlyObjective
	if subjectivity > subjectiveThreshold {
		r.Objectivity = report.HighlySubjective
	}
	r.Tone = tone(tokens, subjectivity)
	r.ClickbaitScore = clickbait(text, tokens)
	r.Topic = a.topic(tokens)
	r.FlaggedKeywords = flagged(text, tokens)
	return r, nil
}

func readability(text string) (float64, report.ReadingLevel) {
	score := textstat.FleschReadingEase(text)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return defaultReadingScore, report.Standard
	}
	score = math.Round(score*10) / 10
	return score, ReadingLevel(score)
}

// ReadingLevel maps a Flesch reading-ease score to its band.
func ReadingLevel(score float64) report.ReadingLevel {
	switch {
	case score > 90:
		return report.VeryEasy
	case score > 80:
		return report.Easy
	case score > 60:
		return report.Standard
	case score > 30:
		return report.Complex
	default:
		return report.VeryComplex
	}
}

func sentiment(tokens []string) report.Sentiment {
	pos := lexicon.Count(tokens, lexicon.Positive)
	neg := lexicon.Count(tokens, lexicon.Negative)
	s := float64(pos-neg) / float64(max(1, pos+neg))
	switch {
	case s > sentimentThreshold:
		return report.Positive
	case s < -sentimentThreshold:
		return report.Negative
	default:
		return report.Neutral
	}
}

func tone(tokens []string, subjectivity float64) report.Tone {
	switch {
	case countTerms(tokens, lexicon.Angry) > toneMatchThreshold:
		return report.ToneAggressive
	case countTerms(tokens, lexicon.Fear) > toneMatchThreshold:
		return report.ToneAlarmist
	case subjectivity > emotionalThreshold:
		return report.ToneEmotional
	default:
		return report.ToneNeutral
	}
}

// countTerms counts token occurrences of any of terms.
func countTerms(tokens, terms []string) int {
	n := 0
	for _, t := range tokens {
		for _, term := range terms {
			if t == term {
				n++
				break
			}
		}
	}
	return n
}
