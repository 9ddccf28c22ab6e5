package model

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/classifier"
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/features"
	"github.com/kailas-cloud/verity/internal/features/scale"
	"github.com/kailas-cloud/verity/internal/features/sparse"
	"github.com/kailas-cloud/verity/internal/features/tfidf"
)

func trainSmall(t *testing.T) *Artifact {
	t.Helper()
	var texts []string
	var ys []int
	for i := 0; i < 10; i++ {
		texts = append(texts, fmt.Sprintf("SHOCKING secret exposed!! you won't believe hoax number %d", i))
		ys = append(ys, 1)
		texts = append(texts, fmt.Sprintf("The senate committee reviewed the budget report in session %d.", i))
		ys = append(ys, 0)
	}

	vec := tfidf.New(tfidf.Options{MinDF: 1, MaxDF: 1.0, MaxN: 2})
	lex := features.NewLexical(vec)
	st := features.NewStructural(scale.MinMax{})
	union := features.NewUnion(lex, st)
	if err := union.Fit(texts); err != nil {
		t.Fatalf("fit: %v", err)
	}
	xs := make([]sparse.Vector, len(texts))
	for i, text := range texts {
		xs[i] = union.Transform(text)
	}
	clf, err := classifier.TrainCalibrated(xs, ys, 5, classifier.DefaultOptions())
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	return NewArtifact(vec, st.Scaler(), clf, TrainingInfo{
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Samples:   len(texts),
		Fake:      10,
		Real:      10,
		Folds:     5,
	})
}

func TestArtifact_RoundTrip(t *testing.T) {
	a := trainSmall(t)
	path := filepath.Join(t.TempDir(), "models", "verity.bin")
	if err := Save(path, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	p1, loaded, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !loaded.Info.CreatedAt.Equal(a.Info.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", a.Info.CreatedAt, loaded.Info.CreatedAt)
	}
	if p1.Dim() != len(a.Vocabulary)+11 {
		t.Errorf("expected dim %d, got %d", len(a.Vocabulary)+11, p1.Dim())
	}

	original, err := NewPipeline(a)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	for _, text := range []string{"SHOCKING hoax exposed!!", "The senate reviewed the report.", ""} {
		wantLabel, wantProb := original.Classify(text)
		gotLabel, gotProb := p1.Classify(text)
		if gotLabel != wantLabel || gotProb != wantProb {
			t.Errorf("%q: expected (%s, %v), got (%s, %v)", text, wantLabel, wantProb, gotLabel, gotProb)
		}
		againLabel, againProb := p1.Classify(text)
		if againLabel != gotLabel || againProb != gotProb {
			t.Errorf("%q: repeated prediction differs", text)
		}
		if gotProb < 0.5 || gotProb > 1 {
			t.Errorf("%q: probability of predicted class out of range: %v", text, gotProb)
		}
	}

	if label, _ := p1.Classify("SHOCKING secret exposed!! you won't believe this hoax"); label != domain.LabelFake {
		t.Errorf("expected FAKE for training-like fake text, got %s", label)
	}
}

func TestSave_NoPartialFileOnInvalidArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	if err := Save(path, &Artifact{}); !errors.Is(err, domain.ErrArtifactCorrupt) {
		t.Fatalf("expected ErrArtifactCorrupt, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files left behind, got %d", len(entries))
	}
}

func TestDecode_Errors(t *testing.T) {
	a := trainSmall(t)
	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("encode: %v", err)
	}
	good := buf.Bytes()

	badMagic := append([]byte("NOPE"), good[4:]...)
	badVersion := append([]byte(nil), good...)
	binary.BigEndian.PutUint16(badVersion[4:6], FormatVersion+1)
	truncated := good[:len(good)/2]

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, domain.ErrArtifactCorrupt},
		{"bad magic", badMagic, domain.ErrArtifactCorrupt},
		{"bad version", badVersion, domain.ErrArtifactVersion},
		{"truncated", truncated, domain.ErrArtifactCorrupt},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	a := trainSmall(t)
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid artifact, got %v", err)
	}

	short := *a
	short.Members = []classifier.Member{{Linear: classifier.Linear{Weights: []float64{1}}}}
	if err := short.Validate(); !errors.Is(err, domain.ErrArtifactCorrupt) {
		t.Errorf("expected weight length error, got %v", err)
	}

	noScaler := *a
	noScaler.ScaleMax = nil
	if err := noScaler.Validate(); !errors.Is(err, domain.ErrArtifactCorrupt) {
		t.Errorf("expected scaler error, got %v", err)
	}
}

func TestResolve_MissingFile(t *testing.T) {
	state := Resolve(filepath.Join(t.TempDir(), "absent.bin"), zap.NewNop())
	if _, ok := state.Pipeline(); ok {
		t.Fatal("expected unavailable")
	}
	if !errors.Is(state.Reason(), domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", state.Reason())
	}
}

func TestResolve_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	if err := os.WriteFile(path, []byte("VRTY\x00\x01garbage"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	state := Resolve(path, zap.NewNop())
	if !errors.Is(state.Reason(), domain.ErrModelUnavailable) || !errors.Is(state.Reason(), domain.ErrArtifactCorrupt) {
		t.Errorf("expected unavailable + corrupt, got %v", state.Reason())
	}
}

func TestLazy_FailureIsSticky(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late.bin")
	l := NewLazy(path, zap.NewNop())

	if _, ok := l.Availability().Pipeline(); ok {
		t.Fatal("expected unavailable before the artifact exists")
	}
	if err := Save(path, trainSmall(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := l.Availability().Pipeline(); ok {
		t.Error("expected failure to stay sticky after the artifact appears")
	}
}

func TestLazy_ConcurrentFirstUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.bin")
	if err := Save(path, trainSmall(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	l := NewLazy(path, zap.NewNop())

	var wg sync.WaitGroup
	got := make([]*Pipeline, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, _ := l.Availability().Pipeline()
			got[i] = p
		}(i)
	}
	wg.Wait()

	for i, p := range got {
		if p == nil || p != got[0] {
			t.Fatalf("caller %d got a different pipeline", i)
		}
	}
}

func TestAvailability_ZeroIsUnavailable(t *testing.T) {
	var a Availability
	if _, ok := a.Pipeline(); ok {
		t.Error("zero availability must not be ready")
	}
	if !errors.Is(a.Reason(), domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", a.Reason())
	}
	if !errors.Is(Unavailable(errors.New("x")).Reason(), domain.ErrModelUnavailable) {
		t.Error("Unavailable must wrap ErrModelUnavailable")
	}
}
