// Package export writes a laid-out graph to durable formats: plain
// JSON, a compressed binary layout file, and a self-contained
// interactive HTML page.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/simulation"
)

// NodeViz is one node with its settled layout position.
type NodeViz struct {
	ID         string            `json:"id"`
	Label      string            `json:"label,omitempty"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
}

// EdgeViz is one edge in the export format.
type EdgeViz struct {
	Source     string            `json:"source"`
	Target     string            `json:"target"`
	Type       string            `json:"type,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// VizData is the full export document.
type VizData struct {
	Nodes        []NodeViz `json:"nodes"`
	Edges        []EdgeViz `json:"edges"`
	CenterNodeID string    `json:"centerNodeId,omitempty"`
}

// BuildVizData pairs the snapshot with engine positions.
func BuildVizData(snap *graph.Snapshot, positions map[string]simulation.Position) VizData {
	data := VizData{
		Nodes:        make([]NodeViz, 0, snap.NodeCount()),
		Edges:        make([]EdgeViz, 0, snap.EdgeCount()),
		CenterNodeID: snap.CenterID(),
	}

	for _, node := range snap.Nodes() {
		pos := positions[node.ID]
		data.Nodes = append(data.Nodes, NodeViz{
			ID:         node.ID,
			Label:      node.Label,
			Type:       string(node.Type),
			Properties: node.Properties,
			X:          pos.X,
			Y:          pos.Y,
		})
	}

	for _, edge := range snap.Edges() {
		data.Edges = append(data.Edges, EdgeViz{
			Source:     edge.Source,
			Target:     edge.Target,
			Type:       edge.Type,
			Properties: edge.Properties,
		})
	}

	return data
}

// ExportJSON exports the laid-out graph to JSON.
func ExportJSON(snap *graph.Snapshot, positions map[string]simulation.Position) ([]byte, error) {
	return json.MarshalIndent(BuildVizData(snap, positions), "", "  ")
}

// WriteJSON exports the laid-out graph to a JSON file.
func WriteJSON(path string, snap *graph.Snapshot, positions map[string]simulation.Position) error {
	data, err := ExportJSON(snap, positions)
	if err != nil {
		return fmt.Errorf("export JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
