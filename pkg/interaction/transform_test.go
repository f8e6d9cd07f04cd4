package interaction

import (
	"math"
	"testing"
)

func TestZoomScaleSaturates(t *testing.T) {
	tr := Identity()

	for i := 0; i < 100; i++ {
		tr = tr.ZoomAround(100, 100, 1.5)
	}
	if tr.Scale != MaxScale {
		t.Errorf("Scale = %f after zooming in, want saturation at %f", tr.Scale, MaxScale)
	}

	for i := 0; i < 100; i++ {
		tr = tr.ZoomAround(100, 100, 0.5)
	}
	if tr.Scale != MinScale {
		t.Errorf("Scale = %f after zooming out, want saturation at %f", tr.Scale, MinScale)
	}
}

func TestZoomAroundKeepsAnchorFixed(t *testing.T) {
	tr := Transform{Scale: 1, TX: 30, TY: -20}

	gx, gy := tr.Invert(200, 150)
	tr = tr.ZoomAround(200, 150, 1.4)

	sx, sy := tr.Apply(gx, gy)
	if math.Abs(sx-200) > 1e-9 || math.Abs(sy-150) > 1e-9 {
		t.Errorf("Anchor moved to (%f, %f), want (200, 150)", sx, sy)
	}
}

func TestApplyInvertRoundTrip(t *testing.T) {
	tr := Transform{Scale: 2.5, TX: 17, TY: 41}

	sx, sy := tr.Apply(12.5, -80)
	x, y := tr.Invert(sx, sy)
	if math.Abs(x-12.5) > 1e-9 || math.Abs(y+80) > 1e-9 {
		t.Errorf("Round trip gave (%f, %f), want (12.5, -80)", x, y)
	}
}

func TestTranslated(t *testing.T) {
	tr := Identity().Translated(10, -5)
	if tr.TX != 10 || tr.TY != -5 || tr.Scale != 1 {
		t.Errorf("Translated gave %+v", tr)
	}
}
