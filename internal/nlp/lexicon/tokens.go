package lexicon

import (
	"strings"
	"unicode"
)

// Tokens splits text on whitespace, lowercases each word and trims surrounding punctuation.
// Inner apostrophes and hyphens are kept ("won't", "mind-blowing"). Empty tokens are dropped.
func Tokens(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(strings.ToLower(f), isEdge)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func isEdge(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Count returns how many tokens belong to set.
func Count(tokens []string, set Set) int {
	n := 0
	for _, t := range tokens {
		if set.Has(t) {
			n++
		}
	}
	return n
}

// Subjectivity is the share of tokens that are opinion markers, in [0, 1].
// Text without tokens scores 0.
func Subjectivity(text string) float64 {
	return SubjectivityOf(Tokens(text))
}

// SubjectivityOf is Subjectivity over pre-split tokens.
func SubjectivityOf(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return float64(Count(tokens, SubjectivityMarkers)) / float64(len(tokens))
}
