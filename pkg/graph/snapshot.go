package graph

import (
	"github.com/google/uuid"
)

// Snapshot is an immutable set of nodes and edges handed to the viewer per
// render request. Edges whose endpoints are not both present in the node set
// are dropped at construction; they are recoverable input noise, never fatal.
//
// Simulation state (positions, velocities, pins) is deliberately NOT stored
// here. The simulation engine owns that state in its own body map, keyed by
// node ID, so a snapshot can be shared freely across components as read-only
// data.
type Snapshot struct {
	id       string
	nodes    []Node
	edges    []Edge
	centerID string
	byID     map[string]int
	dropped  int
}

// NewSnapshot validates the node set, filters dangling edges, and assigns a
// unique snapshot ID. centerID may be empty; if it names a node absent from
// the node set it is cleared rather than rejected.
func NewSnapshot(nodes []Node, edges []Edge, centerID string) (*Snapshot, error) {
	byID := make(map[string]int, len(nodes))
	normalized := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return nil, &SnapshotError{Op: "NewSnapshot", Cause: ErrEmptyNodeID}
		}
		if _, exists := byID[n.ID]; exists {
			return nil, &SnapshotError{Op: "NewSnapshot", NodeID: n.ID, Cause: ErrDuplicateNode}
		}
		byID[n.ID] = i
		n.Type = n.Type.Normalize()
		normalized[i] = n
	}

	kept := make([]Edge, 0, len(edges))
	dropped := 0
	for _, e := range edges {
		_, srcOK := byID[e.Source]
		_, dstOK := byID[e.Target]
		if !srcOK || !dstOK {
			dropped++
			continue
		}
		kept = append(kept, e)
	}

	if _, ok := byID[centerID]; !ok {
		centerID = ""
	}

	return &Snapshot{
		id:       uuid.New().String(),
		nodes:    normalized,
		edges:    kept,
		centerID: centerID,
		byID:     byID,
		dropped:  dropped,
	}, nil
}

// ID returns the unique identifier assigned at construction.
func (s *Snapshot) ID() string { return s.id }

// Nodes returns the node list. Callers must treat it as read-only.
func (s *Snapshot) Nodes() []Node { return s.nodes }

// Edges returns the validity-filtered edge list. Callers must treat it as
// read-only.
func (s *Snapshot) Edges() []Edge { return s.edges }

// CenterID returns the designated center node ID, or "" when none was
// supplied or the supplied ID did not resolve.
func (s *Snapshot) CenterID() string { return s.centerID }

// Node looks a node up by ID.
func (s *Snapshot) Node(id string) (Node, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i], true
}

// HasNode reports whether id names a node in this snapshot.
func (s *Snapshot) HasNode(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges that survived validity filtering.
func (s *Snapshot) EdgeCount() int { return len(s.edges) }

// DroppedEdges returns how many edges were excluded for dangling endpoints.
func (s *Snapshot) DroppedEdges() int { return s.dropped }

// Empty reports whether the snapshot holds no nodes.
func (s *Snapshot) Empty() bool { return len(s.nodes) == 0 }

// Neighbors returns the set of node IDs directly connected to id, in either
// edge direction.
func (s *Snapshot) Neighbors(id string) map[string]bool {
	out := make(map[string]bool)
	for _, e := range s.edges {
		if e.Source == id {
			out[e.Target] = true
		}
		if e.Target == id {
			out[e.Source] = true
		}
	}
	return out
}
