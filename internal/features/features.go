// Package features defines the feature extraction capability and its concrete variants.
package features

import (
	"fmt"

	"github.com/kailas-cloud/verity/internal/features/scale"
	"github.com/kailas-cloud/verity/internal/features/sparse"
	"github.com/kailas-cloud/verity/internal/features/structural"
	"github.com/kailas-cloud/verity/internal/features/tfidf"
	"github.com/kailas-cloud/verity/internal/nlp/normalize"
)

// Extractor turns raw text into a fixed-dimension sparse vector.
// Fit is called once on the training corpus; Transform must not change fitted state.
type Extractor interface {
	Fit(corpus []string) error
	Transform(text string) sparse.Vector
	Dim() int
}

// Lexical normalizes text and weights it with a TF-IDF vectorizer.
type Lexical struct {
	norm normalize.Normalizer
	vec  *tfidf.Vectorizer
}

// NewLexical wraps vec. vec may be already fitted (serving) or fresh (training).
func NewLexical(vec *tfidf.Vectorizer) *Lexical {
	return &Lexical{norm: normalize.New(), vec: vec}
}

// Fit normalizes the corpus and learns the vocabulary.
func (l *Lexical) Fit(corpus []string) error {
	docs := make([]string, len(corpus))
	for i, text := range corpus {
		docs[i] = l.norm.Normalize(text)
	}
	if err := l.vec.Fit(docs); err != nil {
		return fmt.Errorf("fit lexical: %w", err)
	}
	return nil
}

// Transform normalizes text and weights it over the vocabulary.
func (l *Lexical) Transform(text string) sparse.Vector {
	return l.vec.Transform(l.norm.Normalize(text))
}

// Dim returns the vocabulary size.
func (l *Lexical) Dim() int { return l.vec.Dim() }

// Vectorizer exposes the underlying vectorizer for persistence.
func (l *Lexical) Vectorizer() *tfidf.Vectorizer { return l.vec }

// Structural extracts the stylistic features of raw text and min-max scales them.
type Structural struct {
	scaler scale.MinMax
}

// NewStructural wraps fitted bounds. The zero MinMax leaves features unscaled until Fit.
func NewStructural(scaler scale.MinMax) *Structural {
	return &Structural{scaler: scaler}
}

// Fit computes scaling bounds over the corpus.
func (s *Structural) Fit(corpus []string) error {
	rows := make([][]float64, len(corpus))
	for i, text := range corpus {
		f := structural.Extract(text)
		rows[i] = f[:]
	}
	m, err := scale.Fit(rows)
	if err != nil {
		return fmt.Errorf("fit structural: %w", err)
	}
	s.scaler = m
	return nil
}

// Transform extracts and scales the features of text.
func (s *Structural) Transform(text string) sparse.Vector {
	f := structural.Extract(text)
	v := sparse.FromDense(s.scaler.Transform(f[:]))
	v.Dim = structural.Size
	return v
}

// Dim is always structural.Size.
func (s *Structural) Dim() int { return structural.Size }

// Scaler exposes the fitted bounds for persistence.
func (s *Structural) Scaler() scale.MinMax { return s.scaler }

// Union concatenates the outputs of its parts in order.
type Union struct {
	parts []Extractor
}

// NewUnion combines parts. The output of parts[i] is offset by the dimensions of parts[:i].
func NewUnion(parts ...Extractor) *Union {
	return &Union{parts: parts}
}

// Fit fits every part on the same corpus, in order.
func (u *Union) Fit(corpus []string) error {
	for _, p := range u.parts {
		if err := p.Fit(corpus); err != nil {
			return err
		}
	}
	return nil
}

// Transform concatenates part vectors.
func (u *Union) Transform(text string) sparse.Vector {
	vs := make([]sparse.Vector, len(u.parts))
	for i, p := range u.parts {
		vs[i] = p.Transform(text)
	}
	return sparse.Concat(vs...)
}

// Dim is the sum of part dimensions.
func (u *Union) Dim() int {
	d := 0
	for _, p := range u.parts {
		d += p.Dim()
	}
	return d
}
