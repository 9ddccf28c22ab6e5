// Package tfidf implements a 1..n-gram TF-IDF vectorizer with document-frequency pruning,
// smoothed IDF, sub-linear term frequency and L2 normalization.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/kailas-cloud/verity/internal/features/sparse"
)

var (
	// ErrEmptyVocabulary is returned when pruning leaves no terms.
	ErrEmptyVocabulary = errors.New("tfidf: empty vocabulary after pruning")
	// ErrNoDocuments is returned when fitting on an empty corpus.
	ErrNoDocuments = errors.New("tfidf: no documents")
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Options control vocabulary construction.
type Options struct {
	MaxFeatures int     // keep at most this many terms by corpus frequency; 0 means unlimited
	MinDF       int     // drop terms seen in fewer documents
	MaxDF       float64 // drop terms seen in more than this share of documents
	MaxN        int     // longest n-gram
}

// DefaultOptions are the production vocabulary settings.
func DefaultOptions() Options {
	return Options{MaxFeatures: 50000, MinDF: 5, MaxDF: 0.9, MaxN: 2}
}

// Vectorizer maps normalized text to weights over a frozen vocabulary.
// It is immutable after Fit or Restore and safe for concurrent Transform calls.
type Vectorizer struct {
	opts  Options
	terms []string
	index map[string]int
	idf   []float64
}

// New returns an unfitted Vectorizer.
func New(opts Options) *Vectorizer {
	if opts.MaxN < 1 {
		opts.MaxN = 1
	}
	return &Vectorizer{opts: opts}
}

// Restore rebuilds a fitted Vectorizer from its vocabulary (index order) and IDF weights.
func Restore(opts Options, terms []string, idf []float64) (*Vectorizer, error) {
	if len(terms) != len(idf) {
		return nil, fmt.Errorf("tfidf: %d terms but %d idf weights", len(terms), len(idf))
	}
	v := New(opts)
	v.terms = terms
	v.idf = idf
	v.index = make(map[string]int, len(terms))
	for i, t := range terms {
		if _, dup := v.index[t]; dup {
			return nil, fmt.Errorf("tfidf: duplicate term %q", t)
		}
		v.index[t] = i
	}
	return v, nil
}

// Fit learns the vocabulary and IDF weights from docs.
func (v *Vectorizer) Fit(docs []string) error {
	n := len(docs)
	if n == 0 {
		return ErrNoDocuments
	}

	df := make(map[string]int)
	tf := make(map[string]int)
	for _, d := range docs {
		counts := v.count(d)
		for term, c := range counts {
			df[term]++
			tf[term] += c
		}
	}

	maxDocs := v.opts.MaxDF * float64(n)
	if v.opts.MaxDF <= 0 || v.opts.MaxDF >= 1 {
		maxDocs = float64(n)
	}
	kept := make([]string, 0, len(df))
	for term, c := range df {
		if c < v.opts.MinDF || float64(c) > maxDocs {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return ErrEmptyVocabulary
	}

	if v.opts.MaxFeatures > 0 && len(kept) > v.opts.MaxFeatures {
		slices.SortFunc(kept, func(a, b string) int {
			if tf[a] != tf[b] {
				return tf[b] - tf[a]
			}
			return strings.Compare(a, b)
		})
		kept = kept[:v.opts.MaxFeatures]
	}
	slices.Sort(kept)

	idf := make([]float64, len(kept))
	for i, term := range kept {
		idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	fitted, err := Restore(v.opts, kept, idf)
	if err != nil {
		return err
	}
	*v = *fitted
	return nil
}

// Dim returns the vocabulary size.
func (v *Vectorizer) Dim() int { return len(v.terms) }

// Terms returns the vocabulary in index order. The slice must not be modified.
func (v *Vectorizer) Terms() []string { return v.terms }

// IDF returns the IDF weights in index order. The slice must not be modified.
func (v *Vectorizer) IDF() []float64 { return v.idf }

// Options returns the options the vectorizer was built with.
func (v *Vectorizer) Options() Options { return v.opts }

// Transform weights normalized text over the vocabulary. Unknown terms are ignored.
func (v *Vectorizer) Transform(doc string) sparse.Vector {
	out := sparse.Zero(len(v.terms))
	counts := v.count(doc)
	for term := range counts {
		if i, ok := v.index[term]; ok {
			out.Indices = append(out.Indices, i)
		}
	}
	if len(out.Indices) == 0 {
		return out
	}
	slices.Sort(out.Indices)
	out.Values = make([]float64, len(out.Indices))
	for k, i := range out.Indices {
		c := counts[v.terms[i]]
		out.Values[k] = (1 + math.Log(float64(c))) * v.idf[i]
	}
	out.Normalize()
	return out
}

// count returns n-gram counts of doc.
func (v *Vectorizer) count(doc string) map[string]int {
	tokens := tokenRe.FindAllString(doc, -1)
	counts := make(map[string]int, len(tokens)*v.opts.MaxN)
	for n := 1; n <= v.opts.MaxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
