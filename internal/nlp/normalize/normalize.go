// Package normalize turns raw news text into the token string fed to the lexical vectorizer.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Sentinel words standing in for '?' and '!' so punctuation survives as n-gram signal.
const (
	QuestionToken    = "questionmark"
	ExclamationToken = "exclamationmark"
)

var (
	reContraction = regexp.MustCompile(`\p{L}+'\p{L}+`)
	reURL         = regexp.MustCompile(`https?://\S+|www\.\S+`)
	reEmail       = regexp.MustCompile(`\S+@\S+`)

	apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'", "`", "'")
	punctMarks  = strings.NewReplacer("?", " "+QuestionToken+" ", "!", " "+ExclamationToken+" ")
)

// Normalizer is the deterministic text-cleaning transform. The zero value is ready to use
// and safe for concurrent use.
type Normalizer struct{}

// New returns a Normalizer.
func New() Normalizer {
	return Normalizer{}
}

// Normalize lowercases, expands contractions, marks ?/! with sentinel words, strips URLs,
// emails, digits and punctuation, collapses character runs, drops stopwords and lemmatizes.
// Normalize(Normalize(x)) == Normalize(x).
func (Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	s := norm.NFKC.String(text)
	// Caser keeps state between calls and must not be shared across goroutines.
	s = cases.Lower(language.English).String(s)
	s = apostrophes.Replace(s)
	s = reContraction.ReplaceAllStringFunc(s, expandContraction)
	s = punctMarks.Replace(s)
	s = reURL.ReplaceAllString(s, " ")
	s = reEmail.ReplaceAllString(s, " ")
	s = lettersOnly(s)
	s = collapseRuns(s)

	words := strings.Fields(s)
	out := words[:0]
	for _, w := range words {
		if IsStopword(w) {
			continue
		}
		// "ies" -> "y" can leave a new run ("flyyies" -> "flyyy").
		l := collapseRuns(Lemma(w))
		if IsStopword(l) {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, " ")
}

// lettersOnly deletes digits, punctuation and symbols, keeping letters and whitespace.
func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, s)
}

// collapseRuns shortens runs of three or more identical characters to two ("soooo" -> "soo").
func collapseRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
