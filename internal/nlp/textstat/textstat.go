// Package textstat computes readability primitives over raw text.
//
// All functions are total: empty input yields zero counts and no division by zero.
package textstat

import (
	"math"
	"strings"
	"unicode"
)

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// Sentences counts segments separated by runs of '.', '!' or '?'.
// Blank segments are discarded; the result is at least 1.
func Sentences(text string) int {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return max(n, 1)
}

// Syllables estimates the syllable count of a single word: vowel-group onsets,
// minus one for a trailing silent "e", floored at 1.
func Syllables(word string) int {
	w := strings.ToLower(word)
	count := 0
	prevVowel := false
	last := rune(0)
	letters := 0
	for _, r := range w {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
		last = r
	}
	if last == 'e' && count > 1 && letters > 2 {
		count--
	}
	return max(count, 1)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// Stats are the counts behind the Flesch formula.
type Stats struct {
	Words     int
	Sentences int
	Syllables int
	Chars     int
}

// Compute gathers Stats for text.
func Compute(text string) Stats {
	words := Words(text)
	s := Stats{Words: len(words), Sentences: Sentences(text)}
	for _, w := range words {
		s.Syllables += Syllables(w)
		s.Chars += len([]rune(w))
	}
	return s
}

// FleschReadingEase returns 206.835 − 1.015×(words/sentences) − 84.6×(syllables/words).
// Text without words scores 0.
func FleschReadingEase(text string) float64 {
	return Compute(text).Flesch()
}

// Flesch is FleschReadingEase over precomputed stats.
func (s Stats) Flesch() float64 {
	if s.Words == 0 {
		return 0
	}
	sentences := float64(max(s.Sentences, 1))
	score := 206.835 - 1.015*(float64(s.Words)/sentences) - 84.6*(float64(s.Syllables)/float64(s.Words))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// UppercaseRatio is the share of uppercase letters among all characters.
func UppercaseRatio(text string) float64 {
	total, upper := 0, 0
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(upper) / float64(total)
}
