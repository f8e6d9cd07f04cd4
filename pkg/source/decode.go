package source

import (
	"encoding/json"
	"fmt"

	"github.com/dd0wney/graphlens/pkg/graph"
)

// Document is the JSON wire format shared by file sources, the live
// feed, and the exporter.
type Document struct {
	Nodes        []NodeDoc `json:"nodes"`
	Edges        []EdgeDoc `json:"edges"`
	CenterNodeID string    `json:"centerNodeId,omitempty"`
}

// NodeDoc is one node in the wire format.
type NodeDoc struct {
	ID         string            `json:"id"`
	Label      string            `json:"label,omitempty"`
	Type       string            `json:"type,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// EdgeDoc is one edge in the wire format.
type EdgeDoc struct {
	Source     string            `json:"source"`
	Target     string            `json:"target"`
	Type       string            `json:"type,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Decode parses a wire document into a validated snapshot.
func Decode(data []byte) (*graph.Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return doc.Snapshot()
}

// Snapshot converts the document into a validated snapshot.
func (d *Document) Snapshot() (*graph.Snapshot, error) {
	nodes := make([]graph.Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes = append(nodes, graph.Node{
			ID:         n.ID,
			Label:      n.Label,
			Type:       graph.NodeType(n.Type),
			Properties: n.Properties,
		})
	}
	edges := make([]graph.Edge, 0, len(d.Edges))
	for _, e := range d.Edges {
		edges = append(edges, graph.Edge{
			Source:     e.Source,
			Target:     e.Target,
			Type:       e.Type,
			Properties: e.Properties,
		})
	}
	return graph.NewSnapshot(nodes, edges, d.CenterNodeID)
}

// DocumentFrom converts a snapshot back into the wire format.
func DocumentFrom(snap *graph.Snapshot) *Document {
	doc := &Document{
		Nodes:        make([]NodeDoc, 0, snap.NodeCount()),
		Edges:        make([]EdgeDoc, 0, snap.EdgeCount()),
		CenterNodeID: snap.CenterID(),
	}
	for _, n := range snap.Nodes() {
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:         n.ID,
			Label:      n.Label,
			Type:       string(n.Type),
			Properties: n.Properties,
		})
	}
	for _, e := range snap.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc{
			Source:     e.Source,
			Target:     e.Target,
			Type:       e.Type,
			Properties: e.Properties,
		})
	}
	return doc
}
