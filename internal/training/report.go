package training

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/verity/internal/domain"
)

// ClassMetrics are the per-class scores of a binary evaluation.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarizes predictions against ground truth.
// Classes is indexed by class id: 0 REAL, 1 FAKE.
type Report struct {
	Classes  [2]ClassMetrics
	Accuracy float64
	Macro    ClassMetrics
	Weighted ClassMetrics
}

// Evaluate scores yPred against yTrue. Undefined ratios are 0.
func Evaluate(yTrue, yPred []int) (Report, error) {
	if len(yTrue) != len(yPred) {
		return Report{}, fmt.Errorf("length mismatch: %d labels, %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return Report{}, fmt.Errorf("%w: nothing to evaluate", domain.ErrInvalidCorpus)
	}

	var tp, fp, fn [2]int
	correct := 0
	for i, y := range yTrue {
		p := yPred[i]
		if y < 0 || y > 1 || p < 0 || p > 1 {
			return Report{}, fmt.Errorf("labels must be 0 or 1, got %d and %d", y, p)
		}
		if y == p {
			tp[y]++
			correct++
		} else {
			fp[p]++
			fn[y]++
		}
	}

	var r Report
	total := len(yTrue)
	for c := 0; c < 2; c++ {
		m := ClassMetrics{
			Precision: ratio(tp[c], tp[c]+fp[c]),
			Recall:    ratio(tp[c], tp[c]+fn[c]),
			Support:   tp[c] + fn[c],
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes[c] = m

		r.Macro.Precision += m.Precision / 2
		r.Macro.Recall += m.Recall / 2
		r.Macro.F1 += m.F1 / 2

		w := float64(m.Support) / float64(total)
		r.Weighted.Precision += m.Precision * w
		r.Weighted.Recall += m.Recall * w
		r.Weighted.F1 += m.F1 * w
	}
	r.Macro.Support = total
	r.Weighted.Support = total
	r.Accuracy = float64(correct) / float64(total)
	return r, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// String renders the report as a fixed-width table.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%14s %10s %10s %10s %10s\n\n", "", "precision", "recall", "f1-score", "support")
	for c := range r.Classes {
		writeRow(&b, string(domain.LabelFromClass(c)), r.Classes[c])
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%14s %10s %10s %10.2f %10d\n", "accuracy", "", "", r.Accuracy, r.Macro.Support)
	writeRow(&b, "macro avg", r.Macro)
	writeRow(&b, "weighted avg", r.Weighted)
	return b.String()
}

func writeRow(b *strings.Builder, name string, m ClassMetrics) {
	fmt.Fprintf(b, "%14s %10.2f %10.2f %10.2f %10d\n", name, m.Precision, m.Recall, m.F1, m.Support)
}
