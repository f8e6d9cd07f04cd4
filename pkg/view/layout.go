package view

import (
	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/simulation"
)

// Layout is an immutable capture of one frame of viewer state. The view
// publishes a fresh Layout after every tick, so readers on other
// goroutines (the HTTP API) never touch live engine bodies.
type Layout struct {
	Snap      *graph.Snapshot
	Positions map[string]simulation.Position
	Pinned    map[string]bool
	Settled   bool
	Alpha     float64
}

// CaptureLayout freezes the engine's current state into a Layout. Call
// it only from the goroutine that owns the engine.
func CaptureLayout(snap *graph.Snapshot, eng *simulation.Engine) *Layout {
	l := &Layout{
		Snap:      snap,
		Positions: eng.Positions(),
		Settled:   eng.Settled(),
		Alpha:     eng.Alpha(),
	}
	for _, n := range snap.Nodes() {
		if eng.Pinned(n.ID) {
			if l.Pinned == nil {
				l.Pinned = make(map[string]bool)
			}
			l.Pinned[n.ID] = true
		}
	}
	return l
}
