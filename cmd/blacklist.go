// File: cmd/blacklist.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/observability"
	"github.com/xkilldash9x/sifminer/internal/ubique"
)

// newBlacklistCmd creates the `blacklist` command group.
func newBlacklistCmd() *cobra.Command {
	blacklistCmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage the blacklist of ubiquitous small molecules",
	}
	blacklistCmd.AddCommand(newBlacklistGenerateCmd())
	return blacklistCmd
}

func newBlacklistGenerateCmd() *cobra.Command {
	var (
		output       string
		threshold    int
		legacy       bool
		clusterNames bool
		mappingFile  string
	)

	generateCmd := &cobra.Command{
		Use:   "generate <model>",
		Short: "Derive a blacklist from the used-to-produce network of a model",
		Long: `Counts the distinct used-to-produce neighbors of every small molecule and
lists those reaching the threshold, with the side of the conversion on which
they are ubiquitous.

With --cluster-names and --mapping-file the first run writes proposed name
mappings and stops; curate the file and run again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			switch {
			case cmd.Flags().Changed("threshold"):
				cfg.SetBlacklistNeighborThreshold(threshold)
			case legacy:
				cfg.SetBlacklistNeighborThreshold(blacklist.LegacyThreshold)
			}
			if cmd.Flags().Changed("cluster-names") {
				cfg.SetBlacklistClusterNames(clusterNames)
			}
			if cmd.Flags().Changed("mapping-file") {
				cfg.SetBlacklistMappingFile(mappingFile)
			}
			bc := cfg.Blacklist()
			if err := bc.Validate(); err != nil {
				return err
			}

			model, err := loadModel(logger, args[0])
			if err != nil {
				return err
			}

			gen := ubique.NewGenerator(ubique.Options{
				Decider:      bc.Decider(),
				ClusterNames: bc.ClusterNames,
				MappingFile:  bc.MappingFile,
				Logger:       logger,
			})
			bl, err := gen.Generate(ctx, model)
			if errors.Is(err, ubique.ErrMappingRequired) {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			if err != nil {
				return fmt.Errorf("failed to generate blacklist: %w", err)
			}

			out, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := bl.Write(out); err != nil {
				_ = out.Close()
				return err
			}
			return out.Close()
		},
	}

	generateCmd.Flags().StringVarP(&output, "output", "o", "", "Output file path. If unset, the blacklist is printed to stdout.")
	generateCmd.Flags().IntVar(&threshold, "threshold", blacklist.DefaultThreshold, "Minimum number of distinct neighbors of a ubiquitous molecule")
	generateCmd.Flags().BoolVar(&legacy, "legacy", false, fmt.Sprintf("Use the legacy threshold of %d", blacklist.LegacyThreshold))
	generateCmd.Flags().BoolVar(&clusterNames, "cluster-names", false, "Merge molecules sharing synonyms before counting")
	generateCmd.Flags().StringVar(&mappingFile, "mapping-file", "", "Curated display name mapping used with --cluster-names")
	return generateCmd
}
