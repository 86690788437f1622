// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/reporting"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// DBPool is an interface that abstracts the pgxpool.Pool to allow for mocking in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sif_runs (
    id UUID PRIMARY KEY,
    source TEXT NOT NULL,
    types TEXT[] NOT NULL,
    interaction_count INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS sif_interactions (
    run_id UUID NOT NULL REFERENCES sif_runs(id) ON DELETE CASCADE,
    source TEXT NOT NULL,
    type TEXT NOT NULL,
    target TEXT NOT NULL,
    directed BOOLEAN NOT NULL,
    mediators TEXT[] NOT NULL,
    PRIMARY KEY (run_id, source, type, target)
);`

const insertRunSQL = `
    INSERT INTO sif_runs (id, source, types, interaction_count, created_at)
    VALUES ($1, $2, $3, $4, $5);`

const selectInteractionsSQL = `
    SELECT source, type, target, directed, mediators
    FROM sif_interactions
    WHERE run_id = $1
    ORDER BY source, target, type;`

var interactionColumns = []string{"run_id", "source", "type", "target", "directed", "mediators"}

// Run describes one persisted search.
type Run struct {
	ID        string
	Source    string
	Types     []string
	CreatedAt time.Time
}

// Store persists reduced networks in PostgreSQL.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a new store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// EnsureSchema creates the tables if they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun stores the interactions of one search in a single transaction and
// returns the run. A missing run id is generated.
func (s *Store) SaveRun(ctx context.Context, run Run, is []*sif.Interaction) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	if run.Types == nil {
		run.Types = []string{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return run, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	if _, err := tx.Exec(ctx, insertRunSQL, run.ID, run.Source, run.Types, len(is), run.CreatedAt); err != nil {
		return run, fmt.Errorf("failed to insert run: %w", err)
	}

	if len(is) > 0 {
		if err := s.copyInteractions(ctx, tx, run.ID, is); err != nil {
			return run, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return run, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.log.Info("Run persisted.", zap.String("run_id", run.ID), zap.Int("interactions", len(is)))
	return run, nil
}

func (s *Store) copyInteractions(ctx context.Context, tx pgx.Tx, runID string, is []*sif.Interaction) error {
	rows := make([][]any, len(is))
	for n, i := range is {
		rows[n] = []any{runID, i.SourceID, i.Type.Tag, i.TargetID, i.Type.Directed, i.MediatorURIs()}
	}

	copyCount, err := tx.CopyFrom(ctx, pgx.Identifier{"sif_interactions"}, interactionColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy interactions: %w", err)
	}
	if int(copyCount) != len(is) {
		return fmt.Errorf("mismatch in copied interactions count: expected %d, got %d", len(is), copyCount)
	}
	return nil
}

// Interactions loads the interactions of a run ordered by source, target and
// type.
func (s *Store) Interactions(ctx context.Context, runID string) ([]reporting.Record, error) {
	rows, err := s.pool.Query(ctx, selectInteractionsSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var out []reporting.Record
	for rows.Next() {
		var r reporting.Record
		if err := rows.Scan(&r.Source, &r.Type, &r.Target, &r.Directed, &r.Mediators); err != nil {
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}
	return out, nil
}
