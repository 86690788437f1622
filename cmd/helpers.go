// File: cmd/helpers.go
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/config"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
)

// loadModel reads a model file, logging its size and load time.
func loadModel(logger *zap.Logger, path string) (*biopax.Model, error) {
	start := time.Now()
	model, err := biopax.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Model loaded.",
		zap.String("path", path),
		zap.Int("elements", model.Len()),
		zap.Duration("duration", time.Since(start)))
	return model, nil
}

// newFetcher builds the identifier fetcher described by the configuration.
func newFetcher(cfg config.IDConfig) (idfetch.Fetcher, error) {
	opts := idfetch.Options{
		SeqDBs:               cfg.SeqDBs,
		ChemDBs:              cfg.ChemDBs,
		UseNameWhenNoDBMatch: cfg.UseName,
		UseURIWhenNoDBMatch:  cfg.UseURI,
	}
	if cfg.SymbolFile != "" {
		table, err := idfetch.LoadSymbolTable(cfg.SymbolFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load symbol table: %w", err)
		}
		opts.Symbols = table
	}
	return idfetch.NewConfigurable(opts), nil
}

// loadBlacklist reads the blacklist file. No path means no filtering.
func loadBlacklist(logger *zap.Logger, path string) (*blacklist.Blacklist, error) {
	if path == "" {
		logger.Warn("No blacklist configured; ubiquitous molecules are not filtered.")
		return nil, nil
	}
	bl, err := blacklist.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Blacklist loaded.", zap.String("path", path), zap.Int("entries", bl.Len()))
	return bl, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing. An empty path or "-" uses fallback,
// which is never closed.
func openOutput(path string, fallback io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{fallback}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return f, nil
}
