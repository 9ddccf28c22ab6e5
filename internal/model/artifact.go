// Package model holds the trained artifact, its on-disk codec and the serving pipeline built from it.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/kailas-cloud/verity/internal/classifier"
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/features/scale"
	"github.com/kailas-cloud/verity/internal/features/structural"
	"github.com/kailas-cloud/verity/internal/features/tfidf"
)

// Artifact is everything serving needs from training. Immutable once decoded.
type Artifact struct {
	Vocabulary []string
	IDF        []float64
	Lexical    tfidf.Options
	ScaleMin   []float64
	ScaleMax   []float64
	Members    []classifier.Member
	Info       TrainingInfo
}

// TrainingInfo describes how the artifact was produced.
type TrainingInfo struct {
	CreatedAt  time.Time
	Samples    int
	Fake       int
	Real       int
	Folds      int
	C          float64
	Seed       uint64
	Accuracy   float64
	MacroF1    float64
	TrainerVer string
}

// NewArtifact assembles an artifact from fitted components.
func NewArtifact(vec *tfidf.Vectorizer, scaler scale.MinMax, clf *classifier.Calibrated, info TrainingInfo) *Artifact {
	return &Artifact{
		Vocabulary: vec.Terms(),
		IDF:        vec.IDF(),
		Lexical:    vec.Options(),
		ScaleMin:   scaler.Min,
		ScaleMax:   scaler.Max,
		Members:    clf.Members,
		Info:       info,
	}
}

// Dim is the feature vector length the artifact expects.
func (a *Artifact) Dim() int {
	return len(a.Vocabulary) + structural.Size
}

// Validate checks the structural invariants of a.
func (a *Artifact) Validate() error {
	if len(a.Vocabulary) == 0 {
		return corrupt("empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return corrupt("vocabulary has %d terms but %d idf weights", len(a.Vocabulary), len(a.IDF))
	}
	for i, w := range a.IDF {
		if !finite(w) || w <= 0 {
			return corrupt("idf[%d] = %v", i, w)
		}
	}
	if len(a.ScaleMin) != structural.Size || len(a.ScaleMax) != structural.Size {
		return corrupt("scaler bounds have %d/%d dimensions, want %d",
			len(a.ScaleMin), len(a.ScaleMax), structural.Size)
	}
	for i := range a.ScaleMin {
		if !finite(a.ScaleMin[i]) || !finite(a.ScaleMax[i]) || a.ScaleMin[i] > a.ScaleMax[i] {
			return corrupt("scaler bounds[%d] = [%v, %v]", i, a.ScaleMin[i], a.ScaleMax[i])
		}
	}
	if len(a.Members) == 0 {
		return corrupt("no classifier members")
	}
	for m, mem := range a.Members {
		if len(mem.Linear.Weights) != a.Dim() {
			return corrupt("member %d has %d weights, want %d", m, len(mem.Linear.Weights), a.Dim())
		}
		if !finite(mem.Linear.Bias) || !finite(mem.Sigmoid.A) || !finite(mem.Sigmoid.B) {
			return corrupt("member %d has non-finite parameters", m)
		}
	}
	return nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrArtifactCorrupt, fmt.Sprintf(format, args...))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
