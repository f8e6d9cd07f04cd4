package simulation

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/graphlens/pkg/graph"
)

// TestSimulationInvariants uses property-based testing to verify layout
// invariants that should hold for any valid snapshot.
func TestSimulationInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25

	properties := gopter.NewProperties(parameters)

	// Build a ring graph of n nodes with a few chords, sized by the inputs.
	buildSnapshot := func(n int, chords int) *graph.Snapshot {
		nodes := make([]graph.Node, n)
		for i := range nodes {
			nodes[i] = graph.Node{ID: fmt.Sprintf("n%d", i)}
		}
		var edges []graph.Edge
		for i := 0; i < n; i++ {
			edges = append(edges, graph.Edge{
				Source: fmt.Sprintf("n%d", i),
				Target: fmt.Sprintf("n%d", (i+1)%n),
				Type:   "NEXT",
			})
		}
		for c := 0; c < chords && n > 3; c++ {
			edges = append(edges, graph.Edge{
				Source: fmt.Sprintf("n%d", c%n),
				Target: fmt.Sprintf("n%d", (c*2+3)%n),
				Type:   "CHORD",
			})
		}
		snap, err := graph.NewSnapshot(nodes, edges, "n0")
		if err != nil {
			panic(err)
		}
		return snap
	}

	settle := func(e *Engine) bool {
		for i := 0; i < 5000; i++ {
			if e.Settled() {
				return true
			}
			e.Step()
		}
		return false
	}

	// Property 1: the engine always terminates, cyclic graphs included.
	properties.Property("simulation always settles", prop.ForAll(
		func(n int, chords int) bool {
			e := NewEngine(buildSnapshot(n, chords), 800, 500, DefaultConfig())
			return settle(e)
		},
		gen.IntRange(1, 24),
		gen.IntRange(0, 6),
	))

	// Property 2: once settled, no two node centers are closer than the sum
	// of their collision radii.
	properties.Property("settled layout has no overlapping circles", prop.ForAll(
		func(n int, chords int) bool {
			snap := buildSnapshot(n, chords)
			e := NewEngine(snap, 800, 500, DefaultConfig())
			if !settle(e) {
				return false
			}
			pos := e.Positions()
			nodes := snap.Nodes()
			for i := range nodes {
				for j := i + 1; j < len(nodes); j++ {
					a, b := nodes[i].ID, nodes[j].ID
					d := math.Hypot(pos[a].X-pos[b].X, pos[a].Y-pos[b].Y)
					if d < e.CollisionRadius(a)+e.CollisionRadius(b) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(2, 16),
		gen.IntRange(0, 4),
	))

	// Property 3: positions stay finite; bounded forces and damping prevent
	// unbounded growth.
	properties.Property("positions remain finite", prop.ForAll(
		func(n int) bool {
			e := NewEngine(buildSnapshot(n, 2), 800, 500, DefaultConfig())
			if !settle(e) {
				return false
			}
			for _, p := range e.Positions() {
				if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 32),
	))

	properties.TestingRun(t)
}
