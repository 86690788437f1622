// internal/graphexport/driver.go
package graphexport

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jExecutor runs queries through a neo4j driver.
type Neo4jExecutor struct {
	Driver   neo4j.DriverWithContext
	Database string
}

// Dial connects to a Neo4j (or Memgraph) server and verifies connectivity.
func Dial(ctx context.Context, uri, username, password, database string) (*Neo4jExecutor, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to %s: %w", uri, err)
	}
	return &Neo4jExecutor{Driver: driver, Database: database}, nil
}

func (d *Neo4jExecutor) ExecuteQuery(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	var cfg []neo4j.ExecuteQueryConfigurationOption
	if d.Database != "" {
		cfg = append(cfg, neo4j.ExecuteQueryWithDatabase(d.Database))
	}
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, cfg...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return result, nil
}

func (d *Neo4jExecutor) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}
