package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/verity/internal/model"
	"github.com/kailas-cloud/verity/internal/training"
)

func newInspectCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "inspect <artifact>",
		Short: "Print training metadata and the strongest indicator terms per class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := model.Load(args[0])
			if err != nil {
				return fmt.Errorf("load artifact: %w", err)
			}
			printInspection(cmd.OutOrStdout(), a, top)
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 20, "Indicators per class")
	return cmd
}

func printInspection(w io.Writer, a *model.Artifact, top int) {
	info := a.Info
	fmt.Fprintf(w, "trained:    %s (trainer %s)\n", info.CreatedAt.Format("2006-01-02 15:04:05 MST"), info.TrainerVer)
	fmt.Fprintf(w, "samples:    %d (fake %d, real %d)\n", info.Samples, info.Fake, info.Real)
	fmt.Fprintf(w, "vocabulary: %d terms, dim %d\n", len(a.Vocabulary), a.Dim())
	fmt.Fprintf(w, "classifier: %d folds, C=%g, seed %d\n", info.Folds, info.C, info.Seed)
	fmt.Fprintf(w, "held-out:   accuracy %.4f, macro F1 %.4f\n", info.Accuracy, info.MacroF1)

	toFake, toReal := training.TopIndicators(a, top)
	fmt.Fprintf(w, "\n--- Top %d indicators for REAL ---\n%s\n", len(toReal), joinTerms(toReal))
	fmt.Fprintf(w, "\n--- Top %d indicators for FAKE ---\n%s\n", len(toFake), joinTerms(toFake))
}

func joinTerms(ind []training.Indicator) string {
	terms := make([]string, len(ind))
	for i, in := range ind {
		terms[i] = in.Term
	}
	return strings.Join(terms, ", ")
}
