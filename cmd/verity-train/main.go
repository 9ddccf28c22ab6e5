// Command verity-train fits the classifier artifact offline and inspects it.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/verity/internal/logger"
	"github.com/kailas-cloud/verity/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "verity-train",
		Short:        "Train and inspect verity classifier artifacts",
		Version:      version.Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("env", "local", "Logger environment: local or prod")

	root.AddCommand(newTrainCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newPredictCmd())
	return root
}

// newLogger builds the logger from the persistent flags.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	env, _ := cmd.Flags().GetString("env")
	level, _ := cmd.Flags().GetString("log-level")
	return logger.NewLogger(env, level) //nolint:wrapcheck // already descriptive
}
