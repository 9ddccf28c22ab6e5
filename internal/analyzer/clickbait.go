package analyzer

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/verity/internal/domain/report"
	"github.com/kailas-cloud/verity/internal/nlp/lexicon"
	"github.com/kailas-cloud/verity/internal/nlp/textstat"
)

// Clickbait score contributions.
const (
	listiclePoints     = 30
	cliffhangerPoints  = 25
	triggerPoints      = 15
	triggerCap         = 35
	punctuationPoints  = 15
	capsPoints         = 15
	capsThreshold      = 0.2
	secondPersonPoints = 10
	headlinePoints     = 5
	headlineMinWords   = 5
	headlineMaxWords   = 15
)

var (
	reListicle     = regexp.MustCompile(`^\d+\s+(reasons|things|ways|signs|secrets|photos|facts|tricks)`)
	reCliffhanger  = regexp.MustCompile(`(this is why|the reason why|what happened|what occurs|will melt your heart|make you cry)`)
	reSecondPerson = regexp.MustCompile(`\b(you|your|you're|yours)\b`)

	apostrophes = strings.NewReplacer("’", "'", "‘", "'")
)

// lower folds case and curly apostrophes for phrase matching.
func lower(text string) string {
	return apostrophes.Replace(strings.ToLower(text))
}

// clickbait scores sensationalist framing in [0, report.MaxClickbait].
func clickbait(text string, tokens []string) int {
	lt := lower(text)
	score := 0

	if reListicle.MatchString(strings.TrimSpace(lt)) {
		score += listiclePoints
	}
	if reCliffhanger.MatchString(lt) {
		score += cliffhangerPoints
	}
	if n := countTriggers(lt, tokens); n > 0 {
		score += min(n*triggerPoints, triggerCap)
	}
	if strings.Contains(text, "?!") || strings.Contains(text, "!!") || strings.Count(text, "!") > 2 {
		score += punctuationPoints
	}
	if textstat.UppercaseRatio(text) > capsThreshold {
		score += capsPoints
	}
	if reSecondPerson.MatchString(lt) {
		score += secondPersonPoints
	}
	if wc := len(textstat.Words(text)); wc > headlineMinWords && wc < headlineMaxWords {
		score += headlinePoints
	}
	return min(score, report.MaxClickbait)
}

// countTriggers counts every clickbait trigger occurrence. Single words match whole tokens;
// phrases match as non-overlapping substrings of the lowered text.
func countTriggers(lt string, tokens []string) int {
	n := 0
	for _, term := range lexicon.ClickbaitTriggers {
		if strings.Contains(term, " ") {
			n += strings.Count(lt, term)
			continue
		}
		for _, t := range tokens {
			if t == term {
				n++
			}
		}
	}
	return n
}

// matchTerms returns the terms present in text, each once, in declaration order.
func matchTerms(terms []string, lt string, tokens []string) []string {
	var out []string
	for _, term := range terms {
		if strings.Contains(term, " ") {
			if strings.Contains(lt, term) {
				out = append(out, term)
			}
			continue
		}
		for _, t := range tokens {
			if t == term {
				out = append(out, term)
				break
			}
		}
	}
	return out
}

// flagged lists angry, fear and clickbait-trigger terms found in text, each once, in lexicon order.
func flagged(text string, tokens []string) []report.Keyword {
	lt := lower(text)
	out := []report.Keyword{}
	seen := map[string]bool{}
	add := func(terms []string, c report.Category) {
		for _, term := range matchTerms(terms, lt, tokens) {
			if seen[term] {
				continue
			}
			seen[term] = true
			out = append(out, report.Keyword{Term: term, Category: c})
		}
	}
	add(lexicon.Angry, report.CategoryAggressive)
	add(lexicon.Fear, report.CategoryFearmongering)
	add(lexicon.ClickbaitTriggers, report.CategoryClickbait)
	return out
}
