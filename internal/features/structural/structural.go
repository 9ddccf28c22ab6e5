// Package structural extracts the dense stylistic features of raw, unnormalized text.
package structural

import (
	"strings"

	"github.com/kailas-cloud/verity/internal/nlp/lexicon"
	"github.com/kailas-cloud/verity/internal/nlp/textstat"
)

// Size is the number of structural features.
const Size = 11

// Names lists the features in vector order.
var Names = [Size]string{
	"word_count",
	"avg_word_length",
	"sentence_count",
	"avg_sentence_length",
	"uppercase_ratio",
	"punctuation_ratio",
	"exclamation_count",
	"question_count",
	"reading_ease",
	"subjectivity",
	"sensational_count",
}

// Extract computes the structural features of text in Names order.
// Empty or whitespace-only text yields all zeros.
func Extract(text string) [Size]float64 {
	var f [Size]float64
	if strings.TrimSpace(text) == "" {
		return f
	}

	st := textstat.Compute(text)
	chars := len([]rune(text))
	excl := strings.Count(text, "!")
	quest := strings.Count(text, "?")

	f[0] = float64(st.Words)
	if st.Words > 0 {
		f[1] = float64(st.Chars) / float64(st.Words)
	}
	f[2] = float64(st.Sentences)
	f[3] = float64(st.Words) / float64(st.Sentences)
	f[4] = textstat.UppercaseRatio(text)
	if chars > 0 {
		f[5] = float64(excl+quest) / float64(chars)
	}
	f[6] = float64(excl)
	f[7] = float64(quest)
	f[8] = st.Flesch()

	tokens := lexicon.Tokens(text)
	f[9] = lexicon.SubjectivityOf(tokens)
	f[10] = float64(lexicon.Count(tokens, lexicon.Sensational))
	return f
}
