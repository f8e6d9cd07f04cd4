package render

import (
	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/interaction"
	"github.com/dd0wney/graphlens/pkg/simulation"
	"github.com/dd0wney/graphlens/pkg/viewport"
)

const (
	nodeLabelOffset = 14.0
	haloWidth       = 3.0
	haloGap         = 4.0
	emptyStateText  = "No graph data to display"
)

// Renderer draws one frame of the graph from current engine positions,
// under the interaction controller's pan/zoom transform. Call Draw on
// every tick event; the full redraw is what keeps the surface in lockstep
// with the mutating position state.
type Renderer struct {
	snap *graph.Snapshot
	eng  *simulation.Engine
	ctrl *interaction.Controller
	vp   *viewport.Viewport
}

// NewRenderer binds a renderer to one snapshot's components.
func NewRenderer(snap *graph.Snapshot, eng *simulation.Engine, ctrl *interaction.Controller, vp *viewport.Viewport) *Renderer {
	return &Renderer{snap: snap, eng: eng, ctrl: ctrl, vp: vp}
}

// Draw renders the whole scene onto the canvas.
func (r *Renderer) Draw(c Canvas) {
	c.Clear()

	if r.snap.Empty() {
		cx, cy := r.vp.Center()
		c.Text(cx, cy, emptyStateText, Style{Fill: emptyColor})
		return
	}

	tr := r.ctrl.Transform()
	hovered := r.ctrl.HoveredID()
	var neighbors map[string]bool
	if hovered != "" {
		neighbors = r.snap.Neighbors(hovered)
	}

	r.drawEdges(c, tr, hovered, neighbors)
	r.drawNodes(c, tr, hovered, neighbors)
}

func (r *Renderer) drawEdges(c Canvas, tr interaction.Transform, hovered string, neighbors map[string]bool) {
	for _, e := range r.snap.Edges() {
		sp, ok := r.eng.Position(e.Source)
		if !ok {
			continue
		}
		tp, ok := r.eng.Position(e.Target)
		if !ok {
			continue
		}

		x1, y1 := tr.Apply(sp.X, sp.Y)
		x2, y2 := tr.Apply(tp.X, tp.Y)

		color := edgeColor
		labelColor := edgeLabelColor
		if hovered != "" && e.Source != hovered && e.Target != hovered {
			color = dimColor
			labelColor = dimColor
		}

		c.Line(x1, y1, x2, y2, Style{Stroke: color, StrokeWidth: 1})
		if e.Type != "" {
			c.Text((x1+x2)/2, (y1+y2)/2, e.Type, Style{Fill: labelColor})
		}
	}
}

func (r *Renderer) drawNodes(c Canvas, tr interaction.Transform, hovered string, neighbors map[string]bool) {
	centerID := r.snap.CenterID()

	for _, n := range r.snap.Nodes() {
		pos, ok := r.eng.Position(n.ID)
		if !ok {
			continue
		}

		x, y := tr.Apply(pos.X, pos.Y)
		radius := r.eng.CollisionRadius(n.ID) * tr.Scale

		fill := NodeColor(n.Type)
		labelColor := nodeLabelColor
		if hovered != "" && n.ID != hovered && !neighbors[n.ID] {
			fill = dimColor
			labelColor = dimColor
		}

		if n.ID == centerID {
			c.Circle(x, y, radius+haloGap, Style{Stroke: haloColor, StrokeWidth: haloWidth})
		}
		c.Circle(x, y, radius, Style{Fill: fill})
		if n.Label != "" {
			c.Text(x, y+radius+nodeLabelOffset, n.Label, Style{Fill: labelColor})
		}
	}
}
