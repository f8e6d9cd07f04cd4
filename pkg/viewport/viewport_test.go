package viewport

import "testing"

func TestResizeNotifiesListeners(t *testing.T) {
	v := New(800, 500)

	var gotW, gotH float64
	calls := 0
	v.OnResize(func(w, h float64) {
		gotW, gotH = w, h
		calls++
	})

	v.Resize(1024, 768)
	if calls != 1 || gotW != 1024 || gotH != 768 {
		t.Errorf("Expected one notification with (1024, 768), got %d calls (%f, %f)", calls, gotW, gotH)
	}
}

func TestResizeIdempotentOnSameSize(t *testing.T) {
	v := New(800, 500)

	calls := 0
	v.OnResize(func(w, h float64) { calls++ })

	v.Resize(800, 500)
	v.Resize(800, 500)
	if calls != 0 {
		t.Errorf("Identical size reports must not notify, got %d calls", calls)
	}

	v.Resize(900, 500)
	v.Resize(900, 500)
	if calls != 1 {
		t.Errorf("Expected exactly one notification, got %d", calls)
	}
}

func TestDefaultHeight(t *testing.T) {
	v := New(640, 0)
	if v.Height() != DefaultHeight {
		t.Errorf("Height = %f, want default %d", v.Height(), DefaultHeight)
	}
}

func TestCenter(t *testing.T) {
	v := New(800, 500)
	x, y := v.Center()
	if x != 400 || y != 250 {
		t.Errorf("Center = (%f, %f), want (400, 250)", x, y)
	}
}
