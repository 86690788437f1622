// internal/graphexport/exporter_test.go
package graphexport_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/sifminer/internal/graphexport"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// MockExecutor is a mock implementation of QueryExecutor.
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	args := m.Called(ctx, query, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*neo4j.EagerResult), args.Error(1)
}

func interactions(n int) []*sif.Interaction {
	out := make([]*sif.Interaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sif.NewInteraction(fmt.Sprintf("G%d", i), "HUB", sif.InComplexWith, sif.Evidence{}))
	}
	return out
}

func rowCount(n int) any {
	return mock.MatchedBy(func(params map[string]any) bool {
		rows, ok := params["rows"].([]any)
		return ok && len(rows) == n && params["run_id"] == "run-1"
	})
}

// -- Test Cases --

func TestExport_Batches(t *testing.T) {
	exec := new(MockExecutor)
	exec.On("ExecuteQuery", mock.Anything, mock.AnythingOfType("string"), rowCount(2)).Return(&neo4j.EagerResult{}, nil).Twice()
	exec.On("ExecuteQuery", mock.Anything, mock.AnythingOfType("string"), rowCount(1)).Return(&neo4j.EagerResult{}, nil).Once()

	e := graphexport.NewExporter(exec, graphexport.WithBatchSize(2), graphexport.WithLogger(zaptest.NewLogger(t)))
	stats, err := e.Export(context.Background(), "run-1", interactions(5))
	require.NoError(t, err)

	assert.Equal(t, graphexport.Stats{Batches: 3, Interactions: 5}, stats)
	exec.AssertExpectations(t)
}

func TestExport_RowShape(t *testing.T) {
	exec := new(MockExecutor)
	var captured map[string]any
	exec.On("ExecuteQuery", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(map[string]any) }).
		Return(&neo4j.EagerResult{}, nil)

	is := []*sif.Interaction{sif.NewInteraction("ZETA", "ALPHA", sif.InComplexWith, sif.Evidence{})}
	_, err := graphexport.NewExporter(exec).Export(context.Background(), "run-1", is)
	require.NoError(t, err)

	rows := captured["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]any{
		"source":    "ALPHA",
		"target":    "ZETA",
		"type":      "in-complex-with",
		"directed":  false,
		"mediators": []string{},
	}, rows[0])
}

func TestExport_StopsOnError(t *testing.T) {
	exec := new(MockExecutor)
	boom := errors.New("service unavailable")
	exec.On("ExecuteQuery", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom).Once()

	stats, err := graphexport.NewExporter(exec, graphexport.WithBatchSize(2)).Export(context.Background(), "run-1", interactions(5))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, stats.Batches)
	exec.AssertNumberOfCalls(t, "ExecuteQuery", 1)
}

func TestExport_Cancelled(t *testing.T) {
	exec := new(MockExecutor)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := graphexport.NewExporter(exec).Export(ctx, "run-1", interactions(1))
	assert.ErrorIs(t, err, context.Canceled)
	exec.AssertNotCalled(t, "ExecuteQuery", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureIndexes(t *testing.T) {
	exec := new(MockExecutor)
	exec.On("ExecuteQuery", mock.Anything, mock.MatchedBy(func(q string) bool {
		return q == "CREATE INDEX sif_node_id IF NOT EXISTS FOR (n:SIFNode) ON (n.id)"
	}), map[string]any(nil)).Return(&neo4j.EagerResult{}, nil)

	require.NoError(t, graphexport.NewExporter(exec).EnsureIndexes(context.Background()))
	exec.AssertExpectations(t)
}
