// Package interaction translates raw pointer and wheel input into
// simulation pin updates, a pan/zoom transform, and semantic node events.
// It deliberately owns no presentation state: tooltip and navigation
// consumers subscribe to the typed events instead.
package interaction

import (
	"math"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/simulation"
	"github.com/dd0wney/graphlens/pkg/viewport"
)

// clickSlop is the pointer travel, in screen pixels, above which a
// down/up pair counts as a drag rather than a click.
const clickSlop = 4.0

// wheelZoomStep is the per-notch zoom factor.
const wheelZoomStep = 1.1

// Controller converts pointer input into engine and transform updates. All
// methods run on the host's input thread, which by contract is the same
// logical thread that drives simulation ticks; an update lands before the
// next integration pass, never retroactively.
type Controller struct {
	snap *graph.Snapshot
	eng  *simulation.Engine
	vp   *viewport.Viewport
	src  simulation.TickSource

	transform Transform

	dragID         string
	dragging       bool
	moved          bool
	downSX, downSY float64

	panning            bool
	panLastX, panLastY float64

	hoverID string

	centerArmed bool
	anim        *centerAnim
	closed      bool

	activatedFns []func(nodeID string)
	hoveredFns   []func(node *graph.Node)
}

// NewController wires a controller to a snapshot's engine and viewport.
// One-shot centering arms itself when the snapshot designates a center
// node; it is re-armed only by constructing a controller for a new
// snapshot.
func NewController(snap *graph.Snapshot, eng *simulation.Engine, vp *viewport.Viewport, src simulation.TickSource) *Controller {
	c := &Controller{
		snap:        snap,
		eng:         eng,
		vp:          vp,
		src:         src,
		transform:   Identity(),
		centerArmed: snap.CenterID() != "",
	}
	eng.OnSettle(c.handleSettle)
	return c
}

// Transform returns the current pan/zoom transform.
func (c *Controller) Transform() Transform {
	return c.transform
}

// HoveredID returns the node currently under the pointer, or "".
func (c *Controller) HoveredID() string {
	return c.hoverID
}

// DraggingID returns the node currently being dragged, or "".
func (c *Controller) DraggingID() string {
	if !c.dragging {
		return ""
	}
	return c.dragID
}

// OnNodeActivated registers a callback for node clicks.
func (c *Controller) OnNodeActivated(fn func(nodeID string)) {
	c.activatedFns = append(c.activatedFns, fn)
}

// OnNodeHovered registers a callback fired with the node on pointer enter
// and nil on pointer leave.
func (c *Controller) OnNodeHovered(fn func(node *graph.Node)) {
	c.hoveredFns = append(c.hoveredFns, fn)
}

// PointerDown begins a node drag when a node is hit, otherwise a
// background pan. Coordinates are screen space.
func (c *Controller) PointerDown(sx, sy float64) {
	c.downSX, c.downSY = sx, sy
	if id := c.hitTest(sx, sy); id != "" {
		c.dragging = true
		c.dragID = id
		c.moved = false
		c.eng.Reheat(simulation.DefaultDragAlphaTarget)
		gx, gy := c.transform.Invert(sx, sy)
		_ = c.eng.Pin(id, gx, gy) // id came from hitTest
		return
	}
	c.panning = true
	c.panLastX, c.panLastY = sx, sy
}

// PointerMove updates the active drag pin, pans the background, or tracks
// hover, depending on the gesture in flight.
func (c *Controller) PointerMove(sx, sy float64) {
	switch {
	case c.dragging:
		if math.Hypot(sx-c.downSX, sy-c.downSY) > clickSlop {
			c.moved = true
		}
		gx, gy := c.transform.Invert(sx, sy)
		_ = c.eng.Pin(c.dragID, gx, gy)
	case c.panning:
		c.transform = c.transform.Translated(sx-c.panLastX, sy-c.panLastY)
		c.panLastX, c.panLastY = sx, sy
	default:
		c.updateHover(sx, sy)
	}
}

// PointerUp ends the gesture. A drag that never exceeded the click slop is
// reported as a node activation.
func (c *Controller) PointerUp(sx, sy float64) {
	if c.dragging {
		_ = c.eng.Unpin(c.dragID)
		c.eng.SetAlphaTarget(0)
		if !c.moved {
			for _, fn := range c.activatedFns {
				fn(c.dragID)
			}
		}
		c.dragging = false
		c.dragID = ""
	}
	c.panning = false
}

// Wheel zooms around the pointer position. notches > 0 zooms in; the
// resulting scale saturates at the [MinScale, MaxScale] bounds.
func (c *Controller) Wheel(sx, sy, notches float64) {
	factor := math.Pow(wheelZoomStep, notches)
	c.transform = c.transform.ZoomAround(sx, sy, factor)
}

// PointerLeave clears hover state when the pointer exits the surface.
func (c *Controller) PointerLeave() {
	c.setHover("")
}

// Close detaches the controller: pending centering animation frames become
// no-ops and no further events are emitted.
func (c *Controller) Close() {
	c.closed = true
	c.anim = nil
	c.activatedFns = nil
	c.hoveredFns = nil
}

func (c *Controller) updateHover(sx, sy float64) {
	c.setHover(c.hitTest(sx, sy))
}

func (c *Controller) setHover(id string) {
	if id == c.hoverID {
		return
	}
	c.hoverID = id
	var node *graph.Node
	if id != "" {
		if n, ok := c.snap.Node(id); ok {
			node = &n
		}
	}
	for _, fn := range c.hoveredFns {
		fn(node)
	}
}

// hitTest finds the topmost node under a screen point. Nodes render in
// list order, so the scan runs back to front.
func (c *Controller) hitTest(sx, sy float64) string {
	nodes := c.snap.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		id := nodes[i].ID
		pos, ok := c.eng.Position(id)
		if !ok {
			continue
		}
		px, py := c.transform.Apply(pos.X, pos.Y)
		r := c.eng.CollisionRadius(id) * c.transform.Scale
		if math.Hypot(sx-px, sy-py) <= r {
			return id
		}
	}
	return ""
}
