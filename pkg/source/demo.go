package source

import (
	"context"

	"github.com/dd0wney/graphlens/pkg/graph"
)

// DemoSource serves a built-in sample knowledge graph, used when no
// real source is configured.
type DemoSource struct{}

// NewDemoSource creates the demo source.
func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

// Load returns the sample graph. The data is fixed, so repeated loads
// are identical.
func (s *DemoSource) Load(ctx context.Context) (*graph.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return graph.NewSnapshot(demoNodes(), demoEdges(), "ada")
}

// Close is a no-op for the demo source.
func (s *DemoSource) Close() error { return nil }

func demoNodes() []graph.Node {
	return []graph.Node{
		{ID: "ada", Label: "Ada Lovelace", Type: graph.TypePerson,
			Properties: map[string]string{"born": "1815"}},
		{ID: "babbage", Label: "Charles Babbage", Type: graph.TypePerson},
		{ID: "menabrea", Label: "Luigi Menabrea", Type: graph.TypePerson},
		{ID: "london", Label: "London", Type: graph.TypePlace},
		{ID: "turin", Label: "Turin", Type: graph.TypePlace},
		{ID: "rs", Label: "Royal Society", Type: graph.TypeOrganization},
		{ID: "engine", Label: "Analytical Engine", Type: graph.TypeTopic},
		{ID: "notes", Label: "Notes on the Engine", Type: graph.TypeTopic},
		{ID: "lecture", Label: "Turin Lectures", Type: graph.TypeEvent},
	}
}

func demoEdges() []graph.Edge {
	return []graph.Edge{
		{Source: "ada", Target: "babbage", Type: "COLLABORATED_WITH"},
		{Source: "ada", Target: "london", Type: "LIVED_IN"},
		{Source: "ada", Target: "notes", Type: "WROTE"},
		{Source: "babbage", Target: "engine", Type: "DESIGNED"},
		{Source: "babbage", Target: "rs", Type: "MEMBER_OF"},
		{Source: "babbage", Target: "london", Type: "LIVED_IN"},
		{Source: "menabrea", Target: "lecture", Type: "ATTENDED"},
		{Source: "menabrea", Target: "turin", Type: "LIVED_IN"},
		{Source: "notes", Target: "engine", Type: "DESCRIBES"},
		{Source: "lecture", Target: "engine", Type: "ABOUT"},
		{Source: "lecture", Target: "turin", Type: "HELD_IN"},
	}
}
