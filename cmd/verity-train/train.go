package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/corpus"
	"github.com/kailas-cloud/verity/internal/model"
	"github.com/kailas-cloud/verity/internal/training"
)

func newTrainCmd() *cobra.Command {
	opts := training.DefaultOptions()
	var fakePath, realPath, column, out string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit an artifact from a fake and a real corpus (.csv or .parquet)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ds, err := corpus.Load(cmd.Context(), fakePath, realPath, column)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}
			fakeN, realN := ds.Counts()
			log.Info("Loaded corpus", zap.Int("fake", fakeN), zap.Int("real", realN))

			res, err := training.New(opts, log).Train(cmd.Context(), ds)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Report.String())

			if err := model.Save(out, res.Artifact); err != nil {
				return fmt.Errorf("save artifact: %w", err)
			}
			log.Info("Saved artifact",
				zap.String("path", out),
				zap.Int("vocabulary", len(res.Artifact.Vocabulary)),
				zap.Float64("accuracy", res.Report.Accuracy),
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&fakePath, "fake", "Fake.csv", "Corpus of fabricated articles (label FAKE)")
	f.StringVar(&realPath, "real", "True.csv", "Corpus of credible articles (label REAL)")
	f.StringVar(&column, "column", corpus.DefaultColumn, "Text column name")
	f.StringVarP(&out, "out", "o", "models/verity.vrty", "Artifact output path")
	f.IntVar(&opts.Folds, "folds", opts.Folds, "Calibration folds")
	f.Float64Var(&opts.TestFraction, "test-size", opts.TestFraction, "Held-out fraction for evaluation")
	f.Uint64Var(&opts.Seed, "seed", opts.Seed, "Shuffle, split and solver seed")
	f.Float64Var(&opts.Classifier.C, "c", opts.Classifier.C, "SVM regularization strength")
	f.IntVar(&opts.Lexical.MaxFeatures, "max-features", opts.Lexical.MaxFeatures, "Vocabulary size cap (0 = unlimited)")
	f.IntVar(&opts.Lexical.MinDF, "min-df", opts.Lexical.MinDF, "Minimum document frequency")
	f.Float64Var(&opts.Lexical.MaxDF, "max-df", opts.Lexical.MaxDF, "Maximum document frequency share")
	return cmd
}
