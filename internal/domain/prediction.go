package domain

import (
	"math"

	"github.com/kailas-cloud/verity/internal/domain/report"
)

// Label is the credibility verdict.
type Label string

const (
	// LabelReal marks credible text (class 0).
	LabelReal Label = "REAL"
	// LabelFake marks fabricated text (class 1).
	LabelFake Label = "FAKE"
)

// Classes used by training and serving alike.
const (
	ClassReal = 0
	ClassFake = 1
)

// LabelFromClass maps a classifier class to a label. Anything but ClassFake is REAL.
func LabelFromClass(class int) Label {
	if class == ClassFake {
		return LabelFake
	}
	return LabelReal
}

// Class returns the classifier class of the label.
func (l Label) Class() int {
	if l == LabelFake {
		return ClassFake
	}
	return ClassReal
}

// IsValid checks if the label is one of the supported values.
func (l Label) IsValid() bool {
	return l == LabelReal || l == LabelFake
}

// Status describes which path produced a prediction.
type Status string

const (
	// StatusSuccess means the trained classifier produced the verdict.
	StatusSuccess Status = "success"
	// StatusHeuristic means the heuristic fallback produced the verdict.
	StatusHeuristic Status = "success_heuristic"
	// StatusFailure means the prediction could not be served.
	StatusFailure Status = "failure_serving"
)

// Prediction is the result of classifying one text.
type Prediction struct {
	Label      Label
	Confidence float64 // probability of Label, 0..1
	Status     Status
	Analysis   report.Report
}

// ConfidencePercent returns the confidence on the 0..100 scale rounded to one decimal.
func (p Prediction) ConfidencePercent() float64 {
	c := p.Confidence
	if math.IsNaN(c) || c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return math.Round(c*1000) / 10
}
