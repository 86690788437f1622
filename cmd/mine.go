// File: cmd/mine.go
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/miner"
	"github.com/xkilldash9x/sifminer/internal/observability"
	"github.com/xkilldash9x/sifminer/internal/pattern"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// newMineCmd creates the `mine` command, which runs a single miner.
func newMineCmd() *cobra.Command {
	var minerName, output, blacklistFile string

	mineCmd := &cobra.Command{
		Use:   "mine <model>",
		Short: "Run one miner and print its simple SIF lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("blacklist") {
				cfg.SetSearchBlacklistFile(blacklistFile)
			}

			bl, err := loadBlacklist(logger, cfg.Search().BlacklistFile)
			if err != nil {
				return err
			}
			m, err := miner.ByName(minerName, bl)
			if err != nil {
				return err
			}
			fetcher, err := newFetcher(cfg.Search().ID)
			if err != nil {
				return err
			}
			m.SetIDFetcher(fetcher)

			model, err := loadModel(logger, args[0])
			if err != nil {
				return err
			}
			matches := pattern.DFSSearcher{}.Search(model, m.Pattern())
			logger.Info("Pattern search complete.", zap.String("miner", m.Name()), zap.Int("anchors", len(matches)))

			out, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := m.WriteResult(matches, out); err != nil {
				_ = out.Close()
				return fmt.Errorf("failed to write result: %w", err)
			}
			return out.Close()
		},
	}

	mineCmd.Flags().StringVarP(&minerName, "miner", "m", "", "Name of the miner to run (see `sifminer miners`)")
	_ = mineCmd.MarkFlagRequired("miner")
	mineCmd.Flags().StringVarP(&output, "output", "o", "", "Output file path. If unset, lines are printed to stdout.")
	mineCmd.Flags().StringVarP(&blacklistFile, "blacklist", "b", "", "Blacklist of ubiquitous molecules")
	return mineCmd
}

// newMinersCmd creates the `miners` command listing the registry.
func newMinersCmd() *cobra.Command {
	var byType bool

	minersCmd := &cobra.Command{
		Use:   "miners",
		Short: "List the available miners and interaction types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if byType {
				fmt.Fprintln(tw, "TYPE\tDIRECTED\tMINERS")
				for _, t := range sif.Types() {
					fmt.Fprintf(tw, "%s\t%t\t%d\n", t.Tag, t.Directed, len(miner.ForType(t)))
				}
				return tw.Flush()
			}

			fmt.Fprintln(tw, "MINER\tTYPE\tDESCRIPTION")
			for _, name := range miner.Names() {
				m, err := miner.ByName(name, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name(), m.Type().Tag, m.Description())
			}
			return tw.Flush()
		},
	}
	minersCmd.Flags().BoolVar(&byType, "types", false, "List interaction types with their miner counts instead")
	return minersCmd
}
