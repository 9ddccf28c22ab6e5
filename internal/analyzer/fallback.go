package analyzer

import (
	"math"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
)

// Fallback scoring.
const (
	fallbackBase      = 50
	negativePenalty   = 20
	positiveBonus     = 10
	subjectivePenalty = 15
	clickbaitWeight   = 0.5
	readabilityBonus  = 15
	realThreshold     = 45
	minFallbackConf   = 0.60
	maxFallbackConf   = 0.95
)

// Verdict is a label with the confidence of that label.
type Verdict struct {
	Label      domain.Label
	Confidence float64
}

// Fallback derives a verdict from a report alone. Confidence stays within [0.60, 0.95].
func Fallback(r report.Report) Verdict {
	return fallbackFromScore(FallbackScore(r))
}

// FallbackScore is the credibility score behind Fallback; above 45 means REAL.
func FallbackScore(r report.Report) float64 {
	score := float64(fallbackBase)
	switch r.Sentiment {
	case report.Negative:
		score -= negativePenalty
	case report.Positive:
		score += positiveBonus
	}
	if r.Objectivity == report.HighlySubjective {
		score -= subjectivePenalty
	}
	score -= float64(r.ClickbaitScore) * clickbaitWeight
	if r.ReadingLevel == report.Standard || r.ReadingLevel == report.Complex {
		score += readabilityBonus
	}
	return score
}

func fallbackFromScore(score float64) Verdict {
	label := domain.LabelFake
	if score > realThreshold {
		label = domain.LabelReal
	}
	conf := math.Abs(score-fallbackBase) / fallbackBase
	if math.IsNaN(conf) {
		conf = minFallbackConf
	}
	conf = min(max(conf, minFallbackConf), maxFallbackConf)
	return Verdict{Label: label, Confidence: conf}
}
