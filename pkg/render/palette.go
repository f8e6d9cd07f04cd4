package render

import "github.com/dd0wney/graphlens/pkg/graph"

// Node fill colors by display type.
var typeColors = map[graph.NodeType]string{
	graph.TypePerson:       "#4e79a7",
	graph.TypePlace:        "#59a14f",
	graph.TypeOrganization: "#f28e2b",
	graph.TypeEvent:        "#e15759",
	graph.TypeTopic:        "#b07aa1",
	graph.TypeDefault:      "#9aa0a6",
}

const (
	edgeColor      = "#6b7280"
	edgeLabelColor = "#9ca3af"
	nodeLabelColor = "#e5e7eb"
	haloColor      = "#f9ab00"
	dimColor       = "#3c4043"
	emptyColor     = "#9aa0a6"
)

// NodeColor returns the fill color for a node type.
func NodeColor(t graph.NodeType) string {
	if c, ok := typeColors[t.Normalize()]; ok {
		return c
	}
	return typeColors[graph.TypeDefault]
}
