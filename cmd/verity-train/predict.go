package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/verity/internal/analyzer"
	"github.com/kailas-cloud/verity/internal/model"
	predictuc "github.com/kailas-cloud/verity/internal/usecase/predict"
)

type predictOutput struct {
	Label      string          `json:"label"`
	Confidence float64         `json:"confidence"`
	Status     string          `json:"status"`
	Analysis   json.RawMessage `json:"analysis"`
	Cleaned    string          `json:"cleaned,omitempty"`
	ProbaFake  *float64        `json:"proba_fake,omitempty"`
}

func newPredictCmd() *cobra.Command {
	var artifact string
	var debug bool

	cmd := &cobra.Command{
		Use:   "predict [text]",
		Short: "Classify text locally; reads stdin when no text is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			text, err := inputText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			state := model.Resolve(artifact, log)
			svc := predictuc.New(model.NewStatic(state), analyzer.New(), nil, log)
			p, err := svc.Predict(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("predict: %w", err)
			}

			analysis, err := json.Marshal(p.Analysis)
			if err != nil {
				return fmt.Errorf("marshal analysis: %w", err)
			}
			out := predictOutput{
				Label:      string(p.Label),
				Confidence: p.ConfidencePercent(),
				Status:     string(p.Status),
				Analysis:   analysis,
			}
			if pipeline, ok := state.Pipeline(); ok && debug {
				out.Cleaned = pipeline.Normalized(text)
				proba := pipeline.ProbaFake(text)
				out.ProbaFake = &proba
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out) //nolint:wrapcheck // stdout write
		},
	}
	cmd.Flags().StringVarP(&artifact, "model", "m", "models/verity.vrty", "Artifact path")
	cmd.Flags().BoolVar(&debug, "debug", false, "Include the normalized text and raw FAKE probability")
	return cmd
}

func inputText(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
