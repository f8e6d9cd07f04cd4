package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/graphlens/pkg/graph"
)

// PGSource loads snapshots from a PostgreSQL database holding graph_nodes
// and graph_edges tables.
type PGSource struct {
	pool *pgxpool.Pool
}

// NewPGSource opens a connection pool against databaseURL and verifies
// connectivity.
func NewPGSource(ctx context.Context, databaseURL string) (*PGSource, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration. The viewer only ever reads, and
	// only around snapshot swaps, so the pool stays small.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PGSource{pool: pool}, nil
}

// Ping checks database connectivity.
func (s *PGSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Load queries all nodes and edges and builds a snapshot. The center
// node, if any, is read from the graph_meta table.
func (s *PGSource) Load(ctx context.Context) (*graph.Snapshot, error) {
	nodes, err := s.loadNodes(ctx)
	if err != nil {
		return nil, err
	}
	edges, err := s.loadEdges(ctx)
	if err != nil {
		return nil, err
	}
	centerID, err := s.loadCenterID(ctx)
	if err != nil {
		return nil, err
	}
	return graph.NewSnapshot(nodes, edges, centerID)
}

func (s *PGSource) loadNodes(ctx context.Context) ([]graph.Node, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, label, type, properties FROM graph_nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []graph.Node
	for rows.Next() {
		var n graph.Node
		var props map[string]string
		if err := rows.Scan(&n.ID, &n.Label, &n.Type, &props); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		n.Properties = props
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read nodes: %w", err)
	}
	return nodes, nil
}

func (s *PGSource) loadEdges(ctx context.Context) ([]graph.Edge, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT source_id, target_id, type, properties FROM graph_edges ORDER BY source_id, target_id`)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	var edges []graph.Edge
	for rows.Next() {
		var e graph.Edge
		var props map[string]string
		if err := rows.Scan(&e.Source, &e.Target, &e.Type, &props); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		e.Properties = props
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}
	return edges, nil
}

func (s *PGSource) loadCenterID(ctx context.Context) (string, error) {
	var centerID string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM graph_meta WHERE key = 'center_node_id'`).Scan(&centerID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row just means no designated center.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query center node: %w", err)
	}
	return centerID, nil
}

// Close releases the connection pool.
func (s *PGSource) Close() error {
	s.pool.Close()
	return nil
}
