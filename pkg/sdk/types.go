package verity

import (
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
)

// Analysis is the heuristic credibility report attached to every prediction.
type Analysis = report.Report

// Prediction is the verdict for one text.
type Prediction struct {
	Label             string  // "REAL" or "FAKE"
	Confidence        float64 // probability of Label, 0..1
	ConfidencePercent float64 // Confidence on the 0..100 scale, one decimal
	Status            string  // "success", "success_heuristic" or "failure_serving"
	Analysis          Analysis
}

// Fake reports whether the verdict is FAKE.
func (p Prediction) Fake() bool { return p.Label == string(domain.LabelFake) }

// Explanation is a prediction with a human-readable account of it.
type Explanation struct {
	Prediction  Prediction
	Summary     string
	Explanation string
	Answer      string // empty unless a question was asked
	Source      string // "template" or "llm"
}

func predictionFromDomain(p domain.Prediction) Prediction {
	return Prediction{
		Label:             string(p.Label),
		Confidence:        p.Confidence,
		ConfidencePercent: p.ConfidencePercent(),
		Status:            string(p.Status),
		Analysis:          p.Analysis,
	}
}
