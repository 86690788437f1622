// internal/graphexport/exporter.go
package graphexport

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/sif"
)

const defaultBatchSize = 500

const (
	createIndexQuery = `CREATE INDEX sif_node_id IF NOT EXISTS FOR (n:SIFNode) ON (n.id)`

	mergeInteractionsQuery = `
		UNWIND $rows AS row
		MERGE (s:SIFNode {id: row.source})
		MERGE (t:SIFNode {id: row.target})
		MERGE (s)-[r:SIF {type: row.type}]->(t)
		SET r.directed = row.directed,
			r.mediators = row.mediators,
			r.run_id = $run_id
	`
)

// QueryExecutor runs a single Cypher statement.
type QueryExecutor interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithBatchSize sets how many interactions go into one UNWIND statement.
func WithBatchSize(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// Exporter writes reduced networks into a property graph as
// (:SIFNode {id})-[:SIF {type, mediators}]->(:SIFNode).
type Exporter struct {
	exec      QueryExecutor
	batchSize int
	log       *zap.Logger
}

// Stats summarizes one export.
type Stats struct {
	Batches      int
	Interactions int
}

func NewExporter(exec QueryExecutor, opts ...Option) *Exporter {
	e := &Exporter{exec: exec, batchSize: defaultBatchSize, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("graph_export")
	return e
}

// EnsureIndexes creates the node id index.
func (e *Exporter) EnsureIndexes(ctx context.Context) error {
	if _, err := e.exec.ExecuteQuery(ctx, createIndexQuery, nil); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// Export merges the interactions in batches. Re-exporting the same network is
// idempotent apart from the run id stamped on each relationship.
func (e *Exporter) Export(ctx context.Context, runID string, is []*sif.Interaction) (Stats, error) {
	var stats Stats
	for start := 0; start < len(is); start += e.batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		end := min(start+e.batchSize, len(is))

		params := map[string]any{
			"rows":   rows(is[start:end]),
			"run_id": runID,
		}
		if _, err := e.exec.ExecuteQuery(ctx, mergeInteractionsQuery, params); err != nil {
			return stats, fmt.Errorf("failed to export batch %d: %w", stats.Batches, err)
		}
		stats.Batches++
		stats.Interactions += end - start
	}
	e.log.Info("Network exported.",
		zap.String("run_id", runID),
		zap.Int("batches", stats.Batches),
		zap.Int("interactions", stats.Interactions))
	return stats, nil
}

func rows(is []*sif.Interaction) []any {
	out := make([]any, 0, len(is))
	for _, i := range is {
		out = append(out, map[string]any{
			"source":    i.SourceID,
			"target":    i.TargetID,
			"type":      i.Type.Tag,
			"directed":  i.Type.Directed,
			"mediators": i.MediatorURIs(),
		})
	}
	return out
}
