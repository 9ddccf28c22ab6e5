package normalize

import "strings"

// irregular nouns. Every value must itself be a fixed point of lemmaStep.
var irregular = map[string]string{
	"children":     "child",
	"people":       "person",
	"men":          "man",
	"women":        "woman",
	"mice":         "mouse",
	"geese":        "goose",
	"feet":         "foot",
	"teeth":        "tooth",
	"lives":        "life",
	"wives":        "wife",
	"knives":       "knife",
	"leaves":       "leaf",
	"wolves":       "wolf",
	"halves":       "half",
	"policemen":    "policeman",
	"chairmen":     "chairman",
	"businessmen":  "businessman",
	"congressmen":  "congressman",
	"spokesmen":    "spokesman",
	"criteria":     "criterion",
	"phenomena":    "phenomenon",
	"crises":       "crisis",
	"analyses":     "analysis",
	"theses":       "thesis",
	"diagnoses":    "diagnosis",
	"hypotheses":   "hypothesis",
	"movies":       "movie",
	"cookies":      "cookie",
	"zombies":      "zombie",
	"rookies":      "rookie",
	"selfies":      "selfie",
	"calories":     "calorie",
	"media":        "media",
	"data":         "data",
	"news":         "news",
	"series":       "series",
	"species":      "species",
	"politics":     "politics",
	"economics":    "economics",
	"physics":      "physics",
	"mathematics":  "mathematics",
	"headquarters": "headquarters",
}

// Lemma reduces a noun to its base form using suffix rules and an irregular table,
// applied until the word stops changing.
func Lemma(w string) string {
	for {
		next := lemmaStep(w)
		if next == w {
			return w
		}
		w = next
	}
}

func lemmaStep(w string) string {
	if base, ok := irregular[w]; ok {
		return base
	}
	n := len(w)
	if n <= 3 || !strings.HasSuffix(w, "s") {
		return w
	}
	switch {
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "us"), strings.HasSuffix(w, "is"):
		return w
	case strings.HasSuffix(w, "ies") && n > 4:
		return w[:n-3] + "y"
	case strings.HasSuffix(w, "sses"), strings.HasSuffix(w, "xes"),
		strings.HasSuffix(w, "ches"), strings.HasSuffix(w, "shes"):
		return w[:n-2]
	default:
		return w[:n-1]
	}
}
