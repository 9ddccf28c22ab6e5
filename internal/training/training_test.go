package training

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/classifier"
	"github.com/kailas-cloud/verity/internal/corpus"
	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/features/tfidf"
	"github.com/kailas-cloud/verity/internal/model"
)

func syntheticDataset(n int) corpus.Dataset {
	var ds corpus.Dataset
	for i := 0; i < n; i++ {
		ds.Texts = append(ds.Texts, fmt.Sprintf("SHOCKING hoax exposed!! you won't believe secret number %d", i))
		ds.Labels = append(ds.Labels, 1)
	}
	for i := 0; i < n; i++ {
		ds.Texts = append(ds.Texts, fmt.Sprintf("The senate committee reviewed the budget report in session %d.", i))
		ds.Labels = append(ds.Labels, 0)
	}
	return ds
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Lexical = tfidf.Options{MinDF: 1, MaxDF: 1.0, MaxN: 2}
	return opts
}

func newTrainer() *Trainer {
	tr := New(smallOptions(), zap.NewNop())
	tr.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return tr
}

func TestPermutation_Deterministic(t *testing.T) {
	a := Permutation(50, 42)
	b := Permutation(50, 42)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed differs:\n%s", diff)
	}
	if diff := cmp.Diff(a, Permutation(50, 7)); diff == "" {
		t.Error("expected different seeds to differ")
	}
}

func TestStratifiedSplit(t *testing.T) {
	labels := make([]int, 0, 100)
	for i := 0; i < 60; i++ {
		labels = append(labels, 1)
	}
	for i := 0; i < 40; i++ {
		labels = append(labels, 0)
	}

	train, test, err := StratifiedSplit(labels, 0.2, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(train) != 80 || len(test) != 20 {
		t.Fatalf("expected 80/20, got %d/%d", len(train), len(test))
	}

	fakeTest := 0
	seen := map[int]bool{}
	for _, i := range test {
		seen[i] = true
		if labels[i] == 1 {
			fakeTest++
		}
	}
	if fakeTest != 12 {
		t.Errorf("expected 12 fake samples in test, got %d", fakeTest)
	}
	for _, i := range train {
		if seen[i] {
			t.Fatalf("index %d in both parts", i)
		}
	}

	train2, test2, _ := StratifiedSplit(labels, 0.2, 42)
	if diff := cmp.Diff(test, test2); diff != "" {
		t.Errorf("same seed gives different split:\n%s", diff)
	}
	if diff := cmp.Diff(train, train2); diff != "" {
		t.Errorf("same seed gives different split:\n%s", diff)
	}
}

func TestStratifiedSplit_Invalid(t *testing.T) {
	if _, _, err := StratifiedSplit([]int{0, 0, 1, 1}, 0, 1); !errors.Is(err, domain.ErrInvalidCorpus) {
		t.Errorf("expected ErrInvalidCorpus for zero fraction, got %v", err)
	}
	if _, _, err := StratifiedSplit([]int{0, 0, 1}, 0.5, 1); !errors.Is(err, domain.ErrInvalidCorpus) {
		t.Errorf("expected ErrInvalidCorpus for single fake sample, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	yTrue := []int{1, 1, 1, 1, 0, 0, 0, 0, 0, 0}
	yPred := []int{1, 1, 1, 0, 0, 0, 0, 0, 1, 1}

	r, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }
	fake := r.Classes[1]
	if !near(fake.Precision, 0.6) || !near(fake.Recall, 0.75) || fake.Support != 4 {
		t.Errorf("unexpected FAKE metrics: %+v", fake)
	}
	realM := r.Classes[0]
	if !near(realM.Precision, 0.8) || !near(realM.Recall, 4.0/6) || realM.Support != 6 {
		t.Errorf("unexpected REAL metrics: %+v", realM)
	}
	if !near(r.Accuracy, 0.7) {
		t.Errorf("expected accuracy 0.7, got %v", r.Accuracy)
	}
	if !near(r.Macro.Recall, (0.75+4.0/6)/2) {
		t.Errorf("unexpected macro recall %v", r.Macro.Recall)
	}
	if !near(r.Weighted.Recall, r.Accuracy) {
		t.Errorf("weighted recall %v must equal accuracy %v", r.Weighted.Recall, r.Accuracy)
	}

	out := r.String()
	for _, want := range []string{"precision", "FAKE", "REAL", "accuracy", "macro avg", "weighted avg"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestEvaluate_NoPositivePredictions(t *testing.T) {
	r, err := Evaluate([]int{1, 0}, []int{0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Classes[1].Precision != 0 || r.Classes[1].F1 != 0 {
		t.Errorf("expected zero precision and F1, got %+v", r.Classes[1])
	}
}

func TestEvaluate_Errors(t *testing.T) {
	if _, err := Evaluate([]int{1}, []int{}); err == nil {
		t.Error("expected length mismatch error")
	}
	if _, err := Evaluate(nil, nil); err == nil {
		t.Error("expected empty error")
	}
	if _, err := Evaluate([]int{2}, []int{0}); err == nil {
		t.Error("expected invalid label error")
	}
}

func TestTrain(t *testing.T) {
	ds := syntheticDataset(20)
	res, err := newTrainer().Train(context.Background(), ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Train != 32 || res.Test != 8 {
		t.Errorf("expected 32/8 split, got %d/%d", res.Train, res.Test)
	}
	if res.Report.Accuracy < 0.75 {
		t.Errorf("expected separable corpus to score >= 0.75, got %v\n%s", res.Report.Accuracy, res.Report)
	}

	a := res.Artifact
	if a.Dim() != len(a.Vocabulary)+11 {
		t.Errorf("expected dim %d, got %d", len(a.Vocabulary)+11, a.Dim())
	}
	if a.Info.Samples != 40 || a.Info.Fake != 20 || a.Info.Real != 20 || a.Info.Folds != 5 {
		t.Errorf("unexpected training info: %+v", a.Info)
	}

	p, err := model.NewPipeline(a)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	label, prob := p.Classify("SHOCKING hoax exposed!! you won't believe this secret")
	if label != domain.LabelFake {
		t.Errorf("expected FAKE, got %s at %v", label, prob)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	ds := syntheticDataset(15)
	first, err := newTrainer().Train(context.Background(), ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newTrainer().Train(context.Background(), ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(first.Artifact, second.Artifact); diff != "" {
		t.Errorf("artifacts differ (-first +second):\n%s", diff)
	}
}

func TestTrain_TooFewSamples(t *testing.T) {
	ds := syntheticDataset(3)
	if _, err := newTrainer().Train(context.Background(), ds); err == nil {
		t.Fatal("expected error when classes are smaller than calibration folds")
	}
}

func TestTrain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTrainer().Train(ctx, syntheticDataset(20)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTopIndicators(t *testing.T) {
	a := &model.Artifact{
		Vocabulary: []string{"hoax", "senate", "shocking", "report", "the"},
		Members: []classifier.Member{
			{Linear: classifier.Linear{Weights: []float64{2, -1, 1, -3, 0, 9, 9}}},
			{Linear: classifier.Linear{Weights: []float64{2, -1, 3, -1, 0, 9, 9}}},
		},
	}

	fake, realInd := TopIndicators(a, 2)
	wantFake := []Indicator{{Term: "hoax", Weight: 2}, {Term: "shocking", Weight: 2}}
	if diff := cmp.Diff(wantFake, fake); diff != "" {
		t.Errorf("fake indicators (-want +got):\n%s", diff)
	}
	wantReal := []Indicator{{Term: "report", Weight: -2}, {Term: "senate", Weight: -1}}
	if diff := cmp.Diff(wantReal, realInd); diff != "" {
		t.Errorf("real indicators (-want +got):\n%s", diff)
	}
}
