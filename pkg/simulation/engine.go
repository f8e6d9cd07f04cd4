package simulation

import (
	"math"

	"github.com/dd0wney/graphlens/pkg/graph"
)

// Position is a 2D coordinate in graph space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// body is the engine-owned mutable simulation state for one node. No other
// component writes these fields; pins are set only through the Pin/Unpin API.
type body struct {
	x, y   float64
	vx, vy float64
	px, py float64 // pin coordinates, valid only while pinned
	pinned bool
	radius float64 // collision radius excluding padding
}

type link struct {
	source, target int
}

// Engine integrates spring, repulsion, centering, and collision forces over
// an engine-owned body map until the decaying alpha falls below AlphaMin.
//
// The engine is single-goroutine by contract: Step, Pin, Unpin, Reheat, and
// the listeners they invoke all run on the caller's cooperative tick loop.
// Input applied between ticks takes effect on the next Step, never
// retroactively.
type Engine struct {
	cfg      Config
	order    []string
	index    map[string]int
	bodies   []*body
	links    []link
	degree   []int
	centerID string

	centerX, centerY float64

	alpha       float64
	alphaTarget float64
	settled     bool

	tickFns   []func()
	settleFns []func()
	wakeFn    func()
}

// golden angle, for the phyllotaxis initial placement
const initialAngle = math.Pi * (3 - 2.2360679774997896) // 3 - sqrt(5)

// NewEngine builds simulation state for a snapshot. Positions are assigned a
// phyllotaxis spiral around the viewport center, which spreads bodies evenly
// without requiring a random source. A zero-node snapshot settles
// immediately and never needs a tick loop.
func NewEngine(snap *graph.Snapshot, width, height float64, cfg Config) *Engine {
	nodes := snap.Nodes()
	e := &Engine{
		cfg:      cfg,
		order:    make([]string, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		bodies:   make([]*body, len(nodes)),
		degree:   make([]int, len(nodes)),
		centerID: snap.CenterID(),
		centerX:  width / 2,
		centerY:  height / 2,
		alpha:    1,
	}

	const initialRadius = 40.0
	for i, n := range nodes {
		e.order[i] = n.ID
		e.index[n.ID] = i
		r := initialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		radius := RegularNodeRadius
		if n.ID == e.centerID {
			radius = CenterNodeRadius
		}
		e.bodies[i] = &body{
			x:      e.centerX + r*math.Cos(a),
			y:      e.centerY + r*math.Sin(a),
			radius: radius,
		}
	}

	for _, edge := range snap.Edges() {
		s := e.index[edge.Source]
		t := e.index[edge.Target]
		e.links = append(e.links, link{source: s, target: t})
		e.degree[s]++
		e.degree[t]++
	}

	if len(nodes) == 0 {
		e.alpha = 0
		e.settled = true
	}
	return e
}

// Step advances the simulation by one tick: decay alpha, accumulate forces
// scaled by it, integrate velocity then position, honor pins, and notify
// tick listeners. Crossing below AlphaMin fires the settle listeners once.
func (e *Engine) Step() {
	if e.settled {
		return
	}

	e.alpha += (e.alphaTarget - e.alpha) * e.cfg.AlphaDecay

	e.applyLinkForce()
	e.applyChargeForce()
	e.applyCenterForce()

	for _, b := range e.bodies {
		if b.pinned {
			b.x, b.y = b.px, b.py
			b.vx, b.vy = 0, 0
			continue
		}
		b.vx *= e.cfg.VelocityDecay
		b.vy *= e.cfg.VelocityDecay
		b.x += b.vx
		b.y += b.vy
	}

	e.applyCollideForce()

	for _, fn := range e.tickFns {
		fn()
	}

	if e.alpha < e.cfg.AlphaMin && e.alphaTarget < e.cfg.AlphaMin {
		e.settled = true
		for _, fn := range e.settleFns {
			fn()
		}
	}
}

// Pin fixes a node at (x, y) in graph space. The position holds exactly on
// every tick until Unpin, while the node keeps exerting forces on others.
func (e *Engine) Pin(id string, x, y float64) error {
	i, ok := e.index[id]
	if !ok {
		return &EngineError{Op: "Pin", NodeID: id, Cause: graph.ErrNodeNotFound}
	}
	b := e.bodies[i]
	b.pinned = true
	b.px, b.py = x, y
	b.x, b.y = x, y
	b.vx, b.vy = 0, 0
	return nil
}

// Unpin releases a pinned node; its position resumes evolving under forces
// on the next tick.
func (e *Engine) Unpin(id string) error {
	i, ok := e.index[id]
	if !ok {
		return &EngineError{Op: "Unpin", NodeID: id, Cause: graph.ErrNodeNotFound}
	}
	e.bodies[i].pinned = false
	return nil
}

// Reheat raises the alpha target so the layout visibly responds to ongoing
// interaction, resuming a settled simulation if necessary.
func (e *Engine) Reheat(target float64) {
	e.alphaTarget = target
	if e.alpha < target {
		e.alpha = target
	}
	if e.settled {
		e.settled = false
		if e.wakeFn != nil {
			e.wakeFn()
		}
	}
}

// SetAlphaTarget adjusts the alpha target without forcing a resume; used at
// drag end to let the system cool back down.
func (e *Engine) SetAlphaTarget(target float64) {
	e.alphaTarget = target
}

// SetCenter moves the centering-force target, typically on viewport resize.
// It does not restart the simulation.
func (e *Engine) SetCenter(x, y float64) {
	e.centerX, e.centerY = x, y
}

// Position returns the current position of a node.
func (e *Engine) Position(id string) (Position, bool) {
	i, ok := e.index[id]
	if !ok {
		return Position{}, false
	}
	return Position{X: e.bodies[i].x, Y: e.bodies[i].y}, true
}

// Positions returns a copy of all current positions keyed by node ID.
func (e *Engine) Positions() map[string]Position {
	out := make(map[string]Position, len(e.bodies))
	for i, id := range e.order {
		out[id] = Position{X: e.bodies[i].x, Y: e.bodies[i].y}
	}
	return out
}

// CollisionRadius returns the collision radius for a node, excluding
// padding. Unknown IDs report the regular radius.
func (e *Engine) CollisionRadius(id string) float64 {
	if id == e.centerID {
		return CenterNodeRadius
	}
	return RegularNodeRadius
}

// Pinned reports whether the node is currently pinned.
func (e *Engine) Pinned(id string) bool {
	i, ok := e.index[id]
	return ok && e.bodies[i].pinned
}

// Alpha returns the current alpha value.
func (e *Engine) Alpha() float64 { return e.alpha }

// Settled reports whether alpha has crossed below the settle threshold.
func (e *Engine) Settled() bool { return e.settled }

// BodyCount returns the number of simulated bodies.
func (e *Engine) BodyCount() int { return len(e.bodies) }

// OnTick registers a listener invoked after every integration pass.
func (e *Engine) OnTick(fn func()) {
	e.tickFns = append(e.tickFns, fn)
}

// OnSettle registers a listener invoked each time alpha crosses below the
// settle threshold.
func (e *Engine) OnSettle(fn func()) {
	e.settleFns = append(e.settleFns, fn)
}

// onWake registers the resume hook used by the tick loop.
func (e *Engine) onWake(fn func()) {
	e.wakeFn = fn
}
