// File: cmd/helpers_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/biopax/biopaxtest"
	"github.com/xkilldash9x/sifminer/internal/config"
	"github.com/xkilldash9x/sifminer/internal/graphexport"
	"github.com/xkilldash9x/sifminer/internal/reporting"
	"github.com/xkilldash9x/sifminer/internal/sif"
	"github.com/xkilldash9x/sifminer/internal/store"
)

// toyLines is the full network of the toy model without a blacklist.
var toyLines = []string{
	"CHEBI:15422\tused-to-produce\tCHEBI:16761",
	"CHEBI:15422\tconsumption-controlled-by\tKINK",
	"KINK\tcontrols-production-of\tCHEBI:16761",
	"KINK\tcontrols-phosphorylation-of\tPROTA",
	"KINK\tcontrols-state-change-of\tPROTA",
	"KINK\tneighbor-of\tPROTA",
}

// -- Mocks --

type mockStore struct{ mock.Mock }

func (m *mockStore) SaveRun(ctx context.Context, run store.Run, is []*sif.Interaction) (store.Run, error) {
	args := m.Called(ctx, run, is)
	return args.Get(0).(store.Run), args.Error(1)
}

func (m *mockStore) Interactions(ctx context.Context, runID string) ([]reporting.Record, error) {
	args := m.Called(ctx, runID)
	recs, _ := args.Get(0).([]reporting.Record)
	return recs, args.Error(1)
}

type stubStoreProvider struct {
	store   runStore
	err     error
	cleaned bool
}

func (p *stubStoreProvider) Create(context.Context, config.Interface) (runStore, func(), error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.store, func() { p.cleaned = true }, nil
}

type mockExporter struct{ mock.Mock }

func (m *mockExporter) Export(ctx context.Context, runID string, is []*sif.Interaction) (graphexport.Stats, error) {
	args := m.Called(ctx, runID, is)
	return args.Get(0).(graphexport.Stats), args.Error(1)
}

type stubGraphProvider struct {
	exporter graphExporter
	err      error
	cleaned  bool
}

func (p *stubGraphProvider) Create(context.Context, config.Interface) (graphExporter, func(), error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.exporter, func() { p.cleaned = true }, nil
}

// -- Helpers --

// newPristineRootCmd returns a fresh command tree whose external services
// fail loudly unless a test provides them.
func newPristineRootCmd() *cobra.Command {
	return newTestRootCmd(providers{stores: &stubStoreProvider{err: errNoStore}, graphs: &stubGraphProvider{err: errNoGraph}})
}

func newTestRootCmd(p providers) *cobra.Command {
	return newRootCommand(p)
}

var (
	errNoStore = errorString("no store in this test")
	errNoGraph = errorString("no graph database in this test")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// execute runs the command tree and returns what it printed.
func execute(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// writeToyModel stores the toy model in the JSON format and returns its path.
func writeToyModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toy.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, biopax.WriteJSON(f, biopaxtest.NewToy().Model))
	require.NoError(t, f.Close())
	return path
}

// writeFile writes content to name inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
