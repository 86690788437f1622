// File: cmd/root_test.go
package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Test Cases --

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := execute(t, newPristineRootCmd(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "sifminer version "+Version)
}

func TestRootCmd_NoArgs(t *testing.T) {
	out, err := execute(t, newPristineRootCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Simple Interaction Format")
	for _, sub := range []string{"search", "mine", "miners", "blacklist", "serve", "convert", "report"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCmd_ConfigErrors(t *testing.T) {
	t.Run("missing explicit config file", func(t *testing.T) {
		_, err := execute(t, newPristineRootCmd(), "--config", filepath.Join(t.TempDir(), "nope.yaml"), "miners")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize configuration")
	})

	t.Run("invalid values", func(t *testing.T) {
		cfgPath := writeFile(t, "config.yaml", "search:\n  concurrency: 0\n")
		_, err := execute(t, newPristineRootCmd(), "--config", cfgPath, "miners")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load or validate config")
	})
}

func TestConfigFileDrivesSearch(t *testing.T) {
	model := writeToyModel(t)
	out := filepath.Join(t.TempDir(), "out.sif")
	cfgPath := writeFile(t, "config.yaml", "search:\n  types: [controls-state-change-of]\n")

	_, err := execute(t, newPristineRootCmd(), "--config", cfgPath, "search", model, "-o", out)
	require.NoError(t, err)
	assert.Equal(t, "KINK\tcontrols-state-change-of\tPROTA\n", readFile(t, out))
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("SIFMINER_SEARCH_CONCURRENCY", "0")
	_, err := execute(t, newPristineRootCmd(), "miners")
	require.Error(t, err, "environment values are validated like file values")
}

func TestGetConfigFromContext(t *testing.T) {
	_, err := getConfigFromContext(context.Background())
	assert.Error(t, err)
}
