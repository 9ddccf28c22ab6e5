package training

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/verity/internal/classifier"
	"github.com/kailas-cloud/verity/internal/model"
)

// Indicator is a vocabulary term with its mean classifier weight.
// Positive weights push toward FAKE, negative toward REAL.
type Indicator struct {
	Term   string
	Weight float64
}

// TopIndicators returns the n terms weighing most toward FAKE and toward REAL,
// strongest first. Structural features are not terms and are left out.
func TopIndicators(a *model.Artifact, n int) (toFake, toReal []Indicator) {
	weights := (&classifier.Calibrated{Members: a.Members}).MeanWeights()
	terms := make([]Indicator, 0, len(a.Vocabulary))
	for i, term := range a.Vocabulary {
		if i >= len(weights) {
			break
		}
		terms = append(terms, Indicator{Term: term, Weight: weights[i]})
	}

	slices.SortStableFunc(terms, func(x, y Indicator) int {
		if c := cmp.Compare(y.Weight, x.Weight); c != 0 {
			return c
		}
		return cmp.Compare(x.Term, y.Term)
	})

	n = min(n, len(terms))
	for _, t := range terms[:n] {
		if t.Weight > 0 {
			toFake = append(toFake, t)
		}
	}
	for i := len(terms) - 1; i >= len(terms)-n; i-- {
		if terms[i].Weight < 0 {
			toReal = append(toReal, terms[i])
		}
	}
	return toFake, toReal
}
