// Package source loads graph snapshots for the viewer: from JSON files,
// a PostgreSQL database, or a live feed socket. All sources produce the
// same validated graph.Snapshot; the viewer does not care where a graph
// came from.
package source

import (
	"context"

	"github.com/dd0wney/graphlens/pkg/graph"
)

// Source produces one snapshot per Load call.
type Source interface {
	// Load fetches and validates a snapshot.
	Load(ctx context.Context) (*graph.Snapshot, error)
	// Close releases any underlying connection. Safe to call twice.
	Close() error
}
