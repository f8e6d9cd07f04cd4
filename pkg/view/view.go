// Package view assembles a snapshot, simulation engine, interaction
// controller, and renderer into one viewer with a snapshot-swap
// lifecycle. Hosts construct a View once, feed it pointer events and a
// canvas, and call SetSnapshot whenever new graph data arrives.
package view

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/interaction"
	"github.com/dd0wney/graphlens/pkg/metrics"
	"github.com/dd0wney/graphlens/pkg/render"
	"github.com/dd0wney/graphlens/pkg/simulation"
	"github.com/dd0wney/graphlens/pkg/viewport"
)

var (
	// ErrClosed is returned when a closed view receives a snapshot.
	ErrClosed = errors.New("view is closed")
	// ErrNilSnapshot is returned when SetSnapshot is given nil.
	ErrNilSnapshot = errors.New("snapshot is nil")
)

// Option configures a View at construction time.
type Option func(*View)

// WithConfig overrides the default simulation tuning.
func WithConfig(cfg simulation.Config) Option {
	return func(v *View) { v.cfg = cfg }
}

// WithMetrics wires simulation and frame metrics into a registry.
func WithMetrics(reg *metrics.Registry) Option {
	return func(v *View) { v.met = reg }
}

// View owns the per-snapshot component graph. Everything runs on the
// host's single event thread; the View is not safe for concurrent use.
type View struct {
	src simulation.TickSource
	vp  *viewport.Viewport
	cfg simulation.Config
	met *metrics.Registry

	snap *graph.Snapshot
	eng  *simulation.Engine
	ctrl *interaction.Controller
	rend *render.Renderer
	loop *simulation.Loop

	activatedFns []func(nodeID string)
	hoveredFns   []func(node *graph.Node)

	layout      atomic.Pointer[Layout]
	settleTicks int
	closed      bool
}

// New creates an empty view over a viewport of the given size. Nothing
// renders until the first SetSnapshot.
func New(src simulation.TickSource, width, height float64, opts ...Option) *View {
	v := &View{
		src: src,
		cfg: simulation.DefaultConfig(),
		vp:  viewport.New(width, height),
	}
	for _, opt := range opts {
		opt(v)
	}

	// A resize recenters the running layout in place; it never restarts
	// the simulation.
	v.vp.OnResize(func(w, h float64) {
		if v.eng != nil {
			v.eng.SetCenter(w/2, h/2)
		}
	})
	return v
}

// SetSnapshot replaces the displayed graph. The previous snapshot's
// loop, pins, transform, and hover state are all discarded; the new
// layout starts from scratch and the centering shot is re-armed.
func (v *View) SetSnapshot(snap *graph.Snapshot) error {
	if v.closed {
		return ErrClosed
	}
	if snap == nil {
		return ErrNilSnapshot
	}

	// Stop the old loop before the new one exists so a stale scheduled
	// tick can never step the new engine.
	if v.loop != nil {
		v.loop.Stop()
	}
	if v.ctrl != nil {
		v.ctrl.Close()
	}

	v.snap = snap
	v.eng = simulation.NewEngine(snap, v.vp.Width(), v.vp.Height(), v.cfg)
	v.ctrl = interaction.NewController(snap, v.eng, v.vp, v.src)
	v.ctrl.OnNodeActivated(v.emitActivated)
	v.ctrl.OnNodeHovered(v.emitHovered)
	v.rend = render.NewRenderer(snap, v.eng, v.ctrl, v.vp)
	v.loop = simulation.NewLoop(v.eng, v.src)

	if v.met != nil {
		v.wireMetrics(snap)
	}

	// The settle publish follows the tick publish within the same Step,
	// so the settled flag is never stale in the capture.
	v.eng.OnTick(v.publishLayout)
	v.eng.OnSettle(v.publishLayout)
	v.publishLayout()

	if !snap.Empty() {
		v.loop.Start()
	}
	return nil
}

// publishLayout freezes the current engine state for cross-goroutine
// readers. Runs on the host loop, on every tick.
func (v *View) publishLayout() {
	v.layout.Store(CaptureLayout(v.snap, v.eng))
}

func (v *View) wireMetrics(snap *graph.Snapshot) {
	met := v.met
	met.SnapshotNodesTotal.Set(float64(snap.NodeCount()))
	met.SnapshotEdgesTotal.Set(float64(snap.EdgeCount()))
	met.SnapshotDroppedEdgesTotal.Add(float64(snap.DroppedEdges()))
	met.SimulationActiveBodies.Set(float64(snap.NodeCount()))

	v.settleTicks = 0
	v.eng.OnTick(func() {
		v.settleTicks++
		met.SimulationTicksTotal.Inc()
		met.SimulationAlpha.Set(v.eng.Alpha())
	})
	v.eng.OnSettle(func() {
		met.RecordSettle(v.settleTicks)
		v.settleTicks = 0
	})
}

// Snapshot returns the currently displayed snapshot, or nil before the
// first SetSnapshot.
func (v *View) Snapshot() *graph.Snapshot { return v.snap }

// Engine returns the running simulation engine, or nil before the
// first SetSnapshot.
func (v *View) Engine() *simulation.Engine { return v.eng }

// Layout returns the most recently published frame capture, or nil
// before the first snapshot. Unlike every other method, Layout is safe
// to call from any goroutine.
func (v *View) Layout() *Layout { return v.layout.Load() }

// Controller returns the current interaction controller, or nil before
// the first SetSnapshot.
func (v *View) Controller() *interaction.Controller { return v.ctrl }

// Viewport returns the view's viewport.
func (v *View) Viewport() *viewport.Viewport { return v.vp }

// Active reports whether the view still needs frames: the simulation
// is running or the centering animation is in flight.
func (v *View) Active() bool {
	if v.eng == nil {
		return false
	}
	return !v.eng.Settled() || v.ctrl.Animating()
}

// OnNodeActivated registers a callback for node clicks. Callbacks
// survive snapshot swaps.
func (v *View) OnNodeActivated(fn func(nodeID string)) {
	v.activatedFns = append(v.activatedFns, fn)
}

// OnNodeHovered registers a callback for hover changes; nil marks
// hover leaving a node. Callbacks survive snapshot swaps.
func (v *View) OnNodeHovered(fn func(node *graph.Node)) {
	v.hoveredFns = append(v.hoveredFns, fn)
}

func (v *View) emitActivated(nodeID string) {
	if v.met != nil {
		v.met.RecordInteraction("click")
	}
	for _, fn := range v.activatedFns {
		fn(nodeID)
	}
}

func (v *View) emitHovered(node *graph.Node) {
	if v.met != nil && node != nil {
		v.met.RecordInteraction("hover")
	}
	for _, fn := range v.hoveredFns {
		fn(node)
	}
}

// Draw renders one frame onto the canvas. Before the first snapshot it
// draws nothing.
func (v *View) Draw(c render.Canvas) {
	if v.rend == nil {
		return
	}
	if v.met != nil {
		start := time.Now()
		defer func() { v.met.RecordFrame(time.Since(start)) }()
	}
	v.rend.Draw(c)
}

// Resize updates the viewport dimensions.
func (v *View) Resize(width, height float64) {
	v.vp.Resize(width, height)
}

// PointerDown forwards a press to the interaction controller.
func (v *View) PointerDown(sx, sy float64) {
	if v.ctrl != nil {
		v.ctrl.PointerDown(sx, sy)
	}
}

// PointerMove forwards pointer motion to the interaction controller.
func (v *View) PointerMove(sx, sy float64) {
	if v.ctrl != nil {
		v.ctrl.PointerMove(sx, sy)
	}
}

// PointerUp forwards a release to the interaction controller.
func (v *View) PointerUp(sx, sy float64) {
	if v.ctrl == nil {
		return
	}
	wasDrag := v.ctrl.DraggingID() != ""
	v.ctrl.PointerUp(sx, sy)
	if wasDrag && v.met != nil {
		v.met.RecordInteraction("drag")
	}
}

// PointerLeave forwards the pointer exiting the surface.
func (v *View) PointerLeave() {
	if v.ctrl != nil {
		v.ctrl.PointerLeave()
	}
}

// Wheel forwards a scroll-wheel zoom at a screen anchor.
func (v *View) Wheel(sx, sy, notches float64) {
	if v.ctrl == nil {
		return
	}
	v.ctrl.Wheel(sx, sy, notches)
	if v.met != nil {
		v.met.RecordInteraction("zoom")
	}
}

// Close tears down the loop and controller. The view accepts no
// further snapshots.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	if v.loop != nil {
		v.loop.Stop()
	}
	if v.ctrl != nil {
		v.ctrl.Close()
	}
	v.activatedFns = nil
	v.hoveredFns = nil
}
