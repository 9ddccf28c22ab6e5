package model

import (
	"fmt"

	"github.com/kailas-cloud/verity/internal/classifier"
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/features"
	"github.com/kailas-cloud/verity/internal/features/scale"
	"github.com/kailas-cloud/verity/internal/features/sparse"
	"github.com/kailas-cloud/verity/internal/features/tfidf"
	"github.com/kailas-cloud/verity/internal/nlp/normalize"
)

// Pipeline is the serving path: feature extraction followed by the calibrated classifier.
// It is immutable and safe for concurrent use.
type Pipeline struct {
	extractor features.Extractor
	clf       *classifier.Calibrated
}

// NewPipeline rebuilds the extractors and classifier frozen in a.
func NewPipeline(a *Artifact) (*Pipeline, error) {
	vec, err := tfidf.Restore(a.Lexical, a.Vocabulary, a.IDF)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArtifactCorrupt, err)
	}
	ext := features.NewUnion(
		features.NewLexical(vec),
		features.NewStructural(scale.MinMax{Min: a.ScaleMin, Max: a.ScaleMax}),
	)
	if ext.Dim() != a.Dim() {
		return nil, corrupt("extractor dim %d, artifact dim %d", ext.Dim(), a.Dim())
	}
	return &Pipeline{extractor: ext, clf: &classifier.Calibrated{Members: a.Members}}, nil
}

// NewPipelineFrom wires an already fitted extractor and classifier.
func NewPipelineFrom(ext features.Extractor, clf *classifier.Calibrated) *Pipeline {
	return &Pipeline{extractor: ext, clf: clf}
}

// Vectorize returns the feature vector of text.
func (p *Pipeline) Vectorize(text string) sparse.Vector {
	return p.extractor.Transform(text)
}

// Classify returns the label of text and the probability of that label.
func (p *Pipeline) Classify(text string) (domain.Label, float64) {
	class, prob := p.clf.Predict(p.Vectorize(text))
	return domain.LabelFromClass(class), prob
}

// ProbaFake returns the calibrated probability that text is fabricated.
func (p *Pipeline) ProbaFake(text string) float64 {
	return p.clf.ProbaFake(p.Vectorize(text))
}

// Normalized returns text as the lexical features see it.
func (p *Pipeline) Normalized(text string) string {
	return normalize.New().Normalize(text)
}

// Dim is the feature vector length.
func (p *Pipeline) Dim() int { return p.extractor.Dim() }

// Open loads the artifact at path and builds its pipeline.
func Open(path string) (*Pipeline, *Artifact, error) {
	a, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	p, err := NewPipeline(a)
	if err != nil {
		return nil, nil, fmt.Errorf("build pipeline: %w", err)
	}
	return p, a, nil
}
