package source

import (
	"context"
	"fmt"
	"os"

	"github.com/dd0wney/graphlens/pkg/graph"
)

// FileSource loads a snapshot from a JSON document on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and validates the file. Each call re-reads from disk, so a
// changed file yields a fresh snapshot.
func (s *FileSource) Load(ctx context.Context) (*graph.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read graph file %s: %w", s.path, err)
	}
	snap, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("graph file %s: %w", s.path, err)
	}
	return snap, nil
}

// Close is a no-op for file sources.
func (s *FileSource) Close() error { return nil }
