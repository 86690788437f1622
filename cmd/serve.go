// File: cmd/serve.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/sifminer/internal/observability"
	"github.com/xkilldash9x/sifminer/internal/server"
)

// newServeCmd creates the `serve` command, which answers SIF queries over
// HTTP against one model kept in memory.
func newServeCmd() *cobra.Command {
	var addr, blacklistFile string

	serveCmd := &cobra.Command{
		Use:   "serve <model>",
		Short: "Serve SIF queries over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.SetServerAddr(addr)
			}
			if cmd.Flags().Changed("blacklist") {
				cfg.SetSearchBlacklistFile(blacklistFile)
			}

			model, err := loadModel(logger, args[0])
			if err != nil {
				return err
			}
			fetcher, err := newFetcher(cfg.Search().ID)
			if err != nil {
				return err
			}
			bl, err := loadBlacklist(logger, cfg.Search().BlacklistFile)
			if err != nil {
				return err
			}

			srv := server.New(model, bl, fetcher,
				server.WithConcurrency(cfg.Search().Concurrency),
				server.WithLogger(logger))
			return srv.ListenAndServe(ctx, cfg.Server().Addr)
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVarP(&blacklistFile, "blacklist", "b", "", "Blacklist of ubiquitous molecules")
	return serveCmd
}
