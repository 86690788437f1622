// File: cmd/providers.go
package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/config"
	"github.com/xkilldash9x/sifminer/internal/graphexport"
	"github.com/xkilldash9x/sifminer/internal/observability"
	"github.com/xkilldash9x/sifminer/internal/reporting"
	"github.com/xkilldash9x/sifminer/internal/sif"
	"github.com/xkilldash9x/sifminer/internal/store"
)

// runStore is the part of store.Store the commands use.
type runStore interface {
	SaveRun(ctx context.Context, run store.Run, is []*sif.Interaction) (store.Run, error)
	Interactions(ctx context.Context, runID string) ([]reporting.Record, error)
}

// storeProvider creates the run store. This abstraction allows the
// injection of a mock store instead of a live database connection.
type storeProvider interface {
	// Create returns the store, a cleanup function releasing its resources,
	// and an error if the creation fails.
	Create(ctx context.Context, cfg config.Interface) (runStore, func(), error)
}

type defaultStoreProvider struct{}

// NewStoreProvider returns the PostgreSQL backed store provider.
func NewStoreProvider() storeProvider {
	return &defaultStoreProvider{}
}

// Create connects to PostgreSQL, makes sure the schema exists and returns the
// store with a cleanup closing the pool.
func (p *defaultStoreProvider) Create(ctx context.Context, cfg config.Interface) (runStore, func(), error) {
	logger := observability.GetLogger()
	if cfg.Database().URL == "" {
		return nil, nil, fmt.Errorf("database URL is not configured (SIFMINER_DATABASE_URL)")
	}

	pool, err := pgxpool.New(ctx, cfg.Database().URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s, err := store.New(ctx, pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to initialize store service: %w", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		logger.Debug("Database connection pool closed.")
	}
	return s, cleanup, nil
}

// graphExporter is the part of graphexport.Exporter the commands use.
type graphExporter interface {
	Export(ctx context.Context, runID string, is []*sif.Interaction) (graphexport.Stats, error)
}

// graphProvider creates the graph exporter.
type graphProvider interface {
	Create(ctx context.Context, cfg config.Interface) (graphExporter, func(), error)
}

type defaultGraphProvider struct{}

// NewGraphProvider returns the Neo4j backed exporter provider.
func NewGraphProvider() graphProvider {
	return &defaultGraphProvider{}
}

func (p *defaultGraphProvider) Create(ctx context.Context, cfg config.Interface) (graphExporter, func(), error) {
	logger := observability.GetLogger()
	nc := cfg.Neo4j()
	if nc.URI == "" {
		return nil, nil, fmt.Errorf("neo4j URI is not configured (SIFMINER_NEO4J_URI)")
	}

	driver, err := graphexport.Dial(ctx, nc.URI, nc.User, nc.Password, nc.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := driver.Close(context.Background()); err != nil {
			logger.Warn("Failed to close neo4j driver.", zap.Error(err))
		}
	}

	exporter := graphexport.NewExporter(driver,
		graphexport.WithBatchSize(nc.BatchSize),
		graphexport.WithLogger(logger))
	if err := exporter.EnsureIndexes(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return exporter, cleanup, nil
}
