// File: cmd/search.go
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/config"
	"github.com/xkilldash9x/sifminer/internal/miner"
	"github.com/xkilldash9x/sifminer/internal/observability"
	"github.com/xkilldash9x/sifminer/internal/reporting"
	"github.com/xkilldash9x/sifminer/internal/sif"
	"github.com/xkilldash9x/sifminer/internal/store"
)

// searchOptions holds the per-invocation settings not kept in the config.
type searchOptions struct {
	modelPath string
	format    string
	output    string
	persist   bool
	export    bool
}

// newSearchCmd creates and configures the `search` command.
func newSearchCmd(p providers) *cobra.Command {
	var (
		opts          searchOptions
		types         []string
		blacklistFile string
		concurrency   int
	)

	searchCmd := &cobra.Command{
		Use:   "search <model>",
		Short: "Extract a SIF network from a BioPAX model",
		Long: `Runs the pattern miners over the model and writes the merged, sorted
interactions. The model may be BioPAX RDF/XML (.owl) or the JSON form, either
optionally gzip or brotli compressed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			// Flags override config-file values.
			if cmd.Flags().Changed("types") {
				cfg.SetSearchTypes(types)
			}
			if cmd.Flags().Changed("blacklist") {
				cfg.SetSearchBlacklistFile(blacklistFile)
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.SetSearchConcurrency(concurrency)
			}

			opts.modelPath = args[0]
			return runSearch(ctx, logger, cfg, opts, p)
		},
	}

	searchCmd.Flags().StringSliceVarP(&types, "types", "t", nil, "Interaction types to extract (default all)")
	searchCmd.Flags().StringVarP(&opts.format, "format", "f", "sif", "Output format: "+strings.Join(reporting.Formats, ", "))
	searchCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path. If unset, the network is printed to stdout.")
	searchCmd.Flags().StringVarP(&blacklistFile, "blacklist", "b", "", "Blacklist of ubiquitous molecules")
	searchCmd.Flags().IntVarP(&concurrency, "concurrency", "j", 1, "Number of miners run in parallel")
	searchCmd.Flags().BoolVar(&opts.persist, "store", false, "Persist the network to PostgreSQL")
	searchCmd.Flags().BoolVar(&opts.export, "neo4j", false, "Export the network to Neo4j")

	return searchCmd
}

// runSearch contains the core, testable logic of the search command.
func runSearch(ctx context.Context, logger *zap.Logger, cfg *config.Config, opts searchOptions, p providers) error {
	sc := cfg.Search()
	if sc.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", sc.Concurrency)
	}
	types, err := sif.ParseTypes(sc.Types)
	if err != nil {
		return err
	}

	// Reject a bad format before doing any work.
	if !slices.Contains(reporting.Formats, opts.format) {
		return fmt.Errorf("%w: %s", reporting.ErrUnsupportedFormat, opts.format)
	}

	model, err := loadModel(logger, opts.modelPath)
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(sc.ID)
	if err != nil {
		return err
	}
	bl, err := loadBlacklist(logger, sc.BlacklistFile)
	if err != nil {
		return err
	}

	searcher := sif.NewSearcher(fetcher, miner.AsSIF(miner.ForTypes(bl, types...)),
		sif.WithTypes(types...),
		sif.WithConcurrency(sc.Concurrency),
		sif.WithProgressInterval(sc.ProgressInterval),
		sif.WithLogger(logger))

	is, err := searcher.SearchSIF(ctx, model)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if err := writeNetwork(logger, opts, is); err != nil {
		return err
	}

	runID := ""
	if opts.persist {
		if runID, err = persistRun(ctx, logger, cfg, p.stores, opts.modelPath, types, is); err != nil {
			return err
		}
	}
	if opts.export {
		if runID == "" {
			runID = uuid.NewString()
		}
		if err := exportRun(ctx, logger, cfg, p.graphs, runID, is); err != nil {
			return err
		}
	}
	return nil
}

// writeNetwork renders the interactions to the requested output.
func writeNetwork(logger *zap.Logger, opts searchOptions, is []*sif.Interaction) error {
	reporter, err := reporting.New(opts.format, opts.output, reporting.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to initialize reporter: %w", err)
	}
	if err := reporter.Write(is...); err != nil {
		_ = reporter.Close()
		return fmt.Errorf("failed to write network: %w", err)
	}
	if err := reporter.Close(); err != nil {
		return fmt.Errorf("failed to write network: %w", err)
	}
	if opts.output != "" {
		logger.Info("Network written.", zap.String("path", opts.output), zap.Int("interactions", len(is)))
	}
	return nil
}

func persistRun(ctx context.Context, logger *zap.Logger, cfg config.Interface, provider storeProvider,
	modelPath string, types []sif.Type, is []*sif.Interaction) (string, error) {
	s, cleanup, err := provider.Create(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize store: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	tags := make([]string, len(types))
	for i, t := range types {
		tags[i] = t.Tag
	}
	run, err := s.SaveRun(ctx, store.Run{Source: filepath.Base(modelPath), Types: tags}, is)
	if err != nil {
		return "", fmt.Errorf("failed to persist run: %w", err)
	}
	logger.Info("Network stored.", zap.String("run_id", run.ID))
	return run.ID, nil
}

func exportRun(ctx context.Context, logger *zap.Logger, cfg config.Interface, provider graphProvider,
	runID string, is []*sif.Interaction) error {
	exporter, cleanup, err := provider.Create(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize graph export: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	stats, err := exporter.Export(ctx, runID, is)
	if err != nil {
		return fmt.Errorf("graph export failed: %w", err)
	}
	logger.Info("Network exported to graph database.",
		zap.String("run_id", runID),
		zap.Int("batches", stats.Batches),
		zap.Int("interactions", stats.Interactions))
	return nil
}
