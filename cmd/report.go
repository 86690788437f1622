// File: cmd/report.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/config"
	"github.com/xkilldash9x/sifminer/internal/observability"
	"github.com/xkilldash9x/sifminer/internal/reporting"
)

// newReportCmd creates and configures the `report` command.
func newReportCmd(provider storeProvider) *cobra.Command {
	var runID, outputPath, format string

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print a network stored by `search --store`",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			out, err := openOutput(outputPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			// Delegate to the testable core logic function.
			if err := runReport(ctx, logger, cfg, runID, format, provider, out); err != nil {
				_ = out.Close()
				return err
			}
			return out.Close()
		},
	}

	reportCmd.Flags().StringVar(&runID, "run-id", "", "The ID of the stored run (required)")
	_ = reportCmd.MarkFlagRequired("run-id")
	reportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path. If unset, the network is printed to stdout.")
	reportCmd.Flags().StringVarP(&format, "format", "f", "sif", "Output format: sif or json")

	return reportCmd
}

// runReport loads the run from the store and writes it.
func runReport(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	runID, format string,
	provider storeProvider,
	out io.Writer,
) error {
	logger.Info("Loading stored network", zap.String("run_id", runID))

	s, cleanup, err := provider.Create(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	recs, err := s.Interactions(ctx, runID)
	if err != nil {
		logger.Error("Failed to load interactions", zap.Error(err), zap.String("run_id", runID))
		return fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	return reporting.WriteRecords(out, format, recs)
}
