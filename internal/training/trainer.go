// Package training fits a serving artifact from a labelled corpus and evaluates it on a held-out split.
package training

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/verity/internal/classifier"
	"github.com/kailas-cloud/verity/internal/corpus"
	"github.com/kailas-cloud/verity/internal/features"
	"github.com/kailas-cloud/verity/internal/features/scale"
	"github.com/kailas-cloud/verity/internal/features/sparse"
	"github.com/kailas-cloud/verity/internal/features/tfidf"
	"github.com/kailas-cloud/verity/internal/model"
	"github.com/kailas-cloud/verity/internal/version"
)

// Options configure a training run.
type Options struct {
	Lexical      tfidf.Options
	Classifier   classifier.Options
	Folds        int
	TestFraction float64
	Seed         uint64
}

// DefaultOptions are the production training settings.
func DefaultOptions() Options {
	return Options{
		Lexical:      tfidf.DefaultOptions(),
		Classifier:   classifier.DefaultOptions(),
		Folds:        5,
		TestFraction: 0.2,
		Seed:         42,
	}
}

// Result is a trained artifact with its held-out evaluation.
type Result struct {
	Artifact *model.Artifact
	Report   Report
	Train    int
	Test     int
}

// Trainer fits artifacts.
type Trainer struct {
	opts   Options
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Trainer.
func New(opts Options, logger *zap.Logger) *Trainer {
	return &Trainer{opts: opts, logger: logger, now: time.Now}
}

// Train shuffles ds, splits it stratified, fits the feature union and the calibrated
// classifier on the training part and evaluates on the rest. The same seed gives the same artifact.
func (t *Trainer) Train(ctx context.Context, ds corpus.Dataset) (Result, error) {
	if len(ds.Texts) != len(ds.Labels) {
		return Result{}, fmt.Errorf("dataset has %d texts and %d labels", len(ds.Texts), len(ds.Labels))
	}

	perm := Permutation(ds.Len(), t.opts.Seed)
	texts := make([]string, len(perm))
	labels := make([]int, len(perm))
	for i, j := range perm {
		texts[i] = ds.Texts[j]
		labels[i] = ds.Labels[j]
	}

	trainIdx, testIdx, err := StratifiedSplit(labels, t.opts.TestFraction, t.opts.Seed)
	if err != nil {
		return Result{}, fmt.Errorf("split: %w", err)
	}
	trainTexts, trainY := pick(texts, labels, trainIdx)
	testTexts, testY := pick(texts, labels, testIdx)
	t.logger.Info("Split corpus", zap.Int("train", len(trainIdx)), zap.Int("test", len(testIdx)))

	vec := tfidf.New(t.opts.Lexical)
	st := features.NewStructural(scale.MinMax{})
	union := features.NewUnion(features.NewLexical(vec), st)
	if err := union.Fit(trainTexts); err != nil {
		return Result{}, fmt.Errorf("fit features: %w", err)
	}
	t.logger.Info("Fitted features", zap.Int("vocabulary", vec.Dim()), zap.Int("dim", union.Dim()))

	trainX, err := vectorize(ctx, union, trainTexts)
	if err != nil {
		return Result{}, err
	}

	clf, err := classifier.TrainCalibrated(trainX, trainY, t.opts.Folds, t.opts.Classifier)
	if err != nil {
		return Result{}, fmt.Errorf("train classifier: %w", err)
	}
	t.logger.Info("Trained classifier", zap.Int("members", len(clf.Members)))

	testX, err := vectorize(ctx, union, testTexts)
	if err != nil {
		return Result{}, err
	}
	pred := make([]int, len(testX))
	for i, x := range testX {
		pred[i], _ = clf.Predict(x)
	}
	report, err := Evaluate(testY, pred)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate: %w", err)
	}

	fakeN, realN := ds.Counts()
	a := model.NewArtifact(vec, st.Scaler(), clf, model.TrainingInfo{
		CreatedAt:  t.now().UTC(),
		Samples:    ds.Len(),
		Fake:       fakeN,
		Real:       realN,
		Folds:      t.opts.Folds,
		C:          t.opts.Classifier.C,
		Seed:       t.opts.Seed,
		Accuracy:   report.Accuracy,
		MacroF1:    report.Macro.F1,
		TrainerVer: version.Version,
	})
	if err := a.Validate(); err != nil {
		return Result{}, fmt.Errorf("validate artifact: %w", err)
	}

	return Result{Artifact: a, Report: report, Train: len(trainIdx), Test: len(testIdx)}, nil
}

func pick(texts []string, labels, idx []int) ([]string, []int) {
	outT := make([]string, len(idx))
	outY := make([]int, len(idx))
	for k, i := range idx {
		outT[k] = texts[i]
		outY[k] = labels[i]
	}
	return outT, outY
}

// vectorize transforms texts in parallel; the fitted union is read-only.
func vectorize(ctx context.Context, ext features.Extractor, texts []string) ([]sparse.Vector, error) {
	out := make([]sparse.Vector, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // context cancellation
			}
			out[i] = ext.Transform(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}
	return out, nil
}
