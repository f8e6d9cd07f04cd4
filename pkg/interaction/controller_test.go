package interaction

import (
	"math"
	"testing"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/simulation"
	"github.com/dd0wney/graphlens/pkg/viewport"
)

type fixture struct {
	snap *graph.Snapshot
	eng  *simulation.Engine
	vp   *viewport.Viewport
	src  *simulation.ManualSource
	ctrl *Controller
}

func newFixture(t *testing.T, centerID string) *fixture {
	t.Helper()
	snap, err := graph.NewSnapshot(
		[]graph.Node{
			{ID: "a", Label: "Alice", Type: graph.TypePerson},
			{ID: "b", Label: "Berlin", Type: graph.TypePlace},
		},
		[]graph.Edge{{Source: "a", Target: "b", Type: "VISITED"}},
		centerID)
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}

	vp := viewport.New(800, 500)
	eng := simulation.NewEngine(snap, vp.Width(), vp.Height(), simulation.DefaultConfig())
	src := &simulation.ManualSource{}
	return &fixture{
		snap: snap,
		eng:  eng,
		vp:   vp,
		src:  src,
		ctrl: NewController(snap, eng, vp, src),
	}
}

// screenPos maps a node's current graph position through the controller's
// transform.
func (f *fixture) screenPos(id string) (float64, float64) {
	pos, _ := f.eng.Position(id)
	return f.ctrl.Transform().Apply(pos.X, pos.Y)
}

func (f *fixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 5000 && !f.eng.Settled(); i++ {
		f.eng.Step()
	}
	if !f.eng.Settled() {
		t.Fatal("Engine did not settle")
	}
}

func TestDragPinsNodeAtPointer(t *testing.T) {
	f := newFixture(t, "")

	sx, sy := f.screenPos("a")
	f.ctrl.PointerDown(sx, sy)

	if f.ctrl.DraggingID() != "a" {
		t.Fatalf("DraggingID = %q, want a", f.ctrl.DraggingID())
	}
	if !f.eng.Pinned("a") {
		t.Fatal("Pointer down on a node must pin it")
	}

	// Dragging to a new pointer position moves the pin; the node holds it
	// exactly on every subsequent tick.
	f.ctrl.PointerMove(sx+40, sy+25)
	gx, gy := f.ctrl.Transform().Invert(sx+40, sy+25)
	for i := 0; i < 10; i++ {
		f.eng.Step()
		pos, _ := f.eng.Position("a")
		if pos.X != gx || pos.Y != gy {
			t.Fatalf("Tick %d: dragged node at (%f, %f), want pin (%f, %f)", i, pos.X, pos.Y, gx, gy)
		}
	}

	f.ctrl.PointerUp(sx+40, sy+25)
	if f.eng.Pinned("a") {
		t.Error("Pointer up must clear the pin")
	}
	f.eng.Step()
	pos, _ := f.eng.Position("a")
	if pos.X == gx && pos.Y == gy {
		t.Error("Released node should resume moving under forces")
	}
}

func TestClickEmitsNodeActivated(t *testing.T) {
	f := newFixture(t, "")

	var activated []string
	f.ctrl.OnNodeActivated(func(id string) { activated = append(activated, id) })

	sx, sy := f.screenPos("a")
	f.ctrl.PointerDown(sx, sy)
	f.ctrl.PointerUp(sx, sy)

	if len(activated) != 1 || activated[0] != "a" {
		t.Errorf("Expected activation of a, got %v", activated)
	}

	// A real drag (travel beyond the click slop) is not a click.
	sx, sy = f.screenPos("b")
	f.ctrl.PointerDown(sx, sy)
	f.ctrl.PointerMove(sx+50, sy)
	f.ctrl.PointerUp(sx+50, sy)

	if len(activated) != 1 {
		t.Errorf("Drag must not emit activation, got %v", activated)
	}
}

func TestClickOnBackgroundEmitsNothing(t *testing.T) {
	f := newFixture(t, "")

	var activated []string
	f.ctrl.OnNodeActivated(func(id string) { activated = append(activated, id) })

	f.ctrl.PointerDown(-9999, -9999)
	f.ctrl.PointerUp(-9999, -9999)

	if len(activated) != 0 {
		t.Errorf("Background click must not activate, got %v", activated)
	}
}

func TestHoverEnterAndLeave(t *testing.T) {
	f := newFixture(t, "")

	var events []*graph.Node
	f.ctrl.OnNodeHovered(func(n *graph.Node) { events = append(events, n) })

	sx, sy := f.screenPos("a")
	f.ctrl.PointerMove(sx, sy)
	f.ctrl.PointerMove(sx+1, sy) // still inside; no duplicate event
	f.ctrl.PointerMove(-9999, -9999)

	if len(events) != 2 {
		t.Fatalf("Expected enter+leave, got %d events", len(events))
	}
	if events[0] == nil || events[0].ID != "a" {
		t.Errorf("Enter event = %v, want node a", events[0])
	}
	if events[1] != nil {
		t.Errorf("Leave event = %v, want nil", events[1])
	}
}

func TestBackgroundDragPans(t *testing.T) {
	f := newFixture(t, "")

	f.ctrl.PointerDown(-9999, -9999)
	f.ctrl.PointerMove(-9999+30, -9999-10)
	f.ctrl.PointerUp(-9999+30, -9999-10)

	tr := f.ctrl.Transform()
	if tr.TX != 30 || tr.TY != -10 {
		t.Errorf("Pan gave TX=%f TY=%f, want (30, -10)", tr.TX, tr.TY)
	}
}

func TestWheelZoomClamped(t *testing.T) {
	f := newFixture(t, "")

	for i := 0; i < 50; i++ {
		f.ctrl.Wheel(400, 250, 1)
	}
	if f.ctrl.Transform().Scale != MaxScale {
		t.Errorf("Scale = %f, want clamp at %f", f.ctrl.Transform().Scale, MaxScale)
	}

	for i := 0; i < 200; i++ {
		f.ctrl.Wheel(400, 250, -1)
	}
	if f.ctrl.Transform().Scale != MinScale {
		t.Errorf("Scale = %f, want clamp at %f", f.ctrl.Transform().Scale, MinScale)
	}
}

func TestOneShotCenteringOnSettle(t *testing.T) {
	f := newFixture(t, "a")

	f.settle(t)
	if !f.ctrl.Animating() {
		t.Fatal("Settle with an armed center node must start the centering animation")
	}
	f.src.Run(1000)
	if f.ctrl.Animating() {
		t.Fatal("Animation did not finish")
	}

	sx, sy := f.screenPos("a")
	cx, cy := f.vp.Center()
	if math.Hypot(sx-cx, sy-cy) > 1e-6 {
		t.Errorf("Center node at (%f, %f) on screen, want viewport center (%f, %f)", sx, sy, cx, cy)
	}

	// A later settle must not re-trigger the animation.
	before := f.ctrl.Transform()
	f.eng.Reheat(simulation.DefaultDragAlphaTarget)
	f.eng.SetAlphaTarget(0)
	f.settle(t)
	f.src.Run(1000)
	if f.ctrl.Transform() != before {
		t.Error("Second settle re-ran the one-shot centering")
	}
}

func TestCenteringSurvivesZoomMidAnimation(t *testing.T) {
	f := newFixture(t, "a")

	f.settle(t)
	if !f.ctrl.Animating() {
		t.Fatal("Centering animation did not start")
	}

	// Zoom partway through the shot; the animation must land the center
	// node on the viewport center at the new scale.
	f.src.Run(10)
	f.ctrl.Wheel(100, 100, 3)
	f.src.Run(1000)
	if f.ctrl.Animating() {
		t.Fatal("Animation did not finish")
	}

	sx, sy := f.screenPos("a")
	cx, cy := f.vp.Center()
	if math.Hypot(sx-cx, sy-cy) > 1e-6 {
		t.Errorf("Center node at (%f, %f) after mid-animation zoom, want viewport center (%f, %f)", sx, sy, cx, cy)
	}
}

func TestNoCenteringWithoutCenterNode(t *testing.T) {
	f := newFixture(t, "")

	f.settle(t)
	if f.ctrl.Animating() {
		t.Error("No centering animation may start without a center node")
	}
	if tr := f.ctrl.Transform(); tr != Identity() {
		t.Errorf("Transform changed to %+v without interaction", tr)
	}
}

func TestCloseCancelsPendingAnimation(t *testing.T) {
	f := newFixture(t, "a")

	f.settle(t)
	f.ctrl.Close()
	before := f.ctrl.Transform()
	f.src.Run(1000)

	if f.ctrl.Transform() != before {
		t.Error("Closed controller must ignore pending animation frames")
	}
}
