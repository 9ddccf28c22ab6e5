package features

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/verity/internal/features/scale"
	"github.com/kailas-cloud/verity/internal/features/structural"
	"github.com/kailas-cloud/verity/internal/features/tfidf"
)

var corpus = []string{
	"The senate passed the budget bill after a long debate.",
	"SHOCKING: the senate secret they don't want you to see!!",
	"Doctors report the new vaccine study shows strong results.",
	"You won't believe what this doctor found. Banned!",
	"Markets closed higher as the economy showed growth.",
}

func fittedUnion(t *testing.T) (*Union, *Lexical) {
	t.Helper()
	lex := NewLexical(tfidf.New(tfidf.Options{MinDF: 1, MaxDF: 1.0, MaxN: 2}))
	u := NewUnion(lex, NewStructural(scale.MinMax{}))
	if err := u.Fit(corpus); err != nil {
		t.Fatalf("fit: %v", err)
	}
	return u, lex
}

func TestUnion_DimIsVocabularyPlusStructural(t *testing.T) {
	u, lex := fittedUnion(t)
	if u.Dim() != lex.Dim()+structural.Size {
		t.Fatalf("expected dim %d, got %d", lex.Dim()+structural.Size, u.Dim())
	}

	inputs := []string{"", "   ", "senate", strings.Repeat("z", 5000), corpus[1] + corpus[3]}
	for _, in := range inputs {
		v := u.Transform(in)
		if v.Dim != u.Dim() {
			t.Errorf("Transform(%.20q): expected dim %d, got %d", in, u.Dim(), v.Dim)
		}
		for _, i := range v.Indices {
			if i < 0 || i >= v.Dim {
				t.Errorf("index %d out of range", i)
			}
		}
	}
}

func TestUnion_StructuralOffset(t *testing.T) {
	u, lex := fittedUnion(t)
	v := u.Transform(corpus[1])
	hasStructural := false
	for _, i := range v.Indices {
		if i >= lex.Dim() {
			hasStructural = true
		}
	}
	if !hasStructural {
		t.Error("expected structural features after the lexical block")
	}
}

func TestStructural_ScaledWithinTrainingBounds(t *testing.T) {
	s := NewStructural(scale.MinMax{})
	if err := s.Fit(corpus); err != nil {
		t.Fatalf("fit: %v", err)
	}
	for _, text := range corpus {
		for _, x := range s.Transform(text).Values {
			if x < 0 || x > 1 {
				t.Errorf("training row scaled outside [0,1]: %v", x)
			}
		}
	}
}

func TestStructural_EmptyIsEmptyVector(t *testing.T) {
	s := NewStructural(scale.MinMax{})
	v := s.Transform("")
	if v.Dim != structural.Size || v.Len() != 0 {
		t.Errorf("expected empty vector of dim %d, got %+v", structural.Size, v)
	}
}

func TestLexical_FitError(t *testing.T) {
	lex := NewLexical(tfidf.New(tfidf.DefaultOptions()))
	if err := lex.Fit([]string{"tiny"}); err == nil {
		t.Error("expected empty vocabulary error")
	}
}
