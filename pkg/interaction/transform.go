package interaction

// Zoom scale bounds. Requested scales outside the range saturate at the
// nearest bound.
const (
	MinScale = 0.3
	MaxScale = 3.0
)

// Transform is the 2D affine pan/zoom transform applied at render time.
// Stored node coordinates are never transformed; only the drawing and the
// pointer hit-tests go through it.
type Transform struct {
	Scale float64
	TX    float64
	TY    float64
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Apply maps a graph-space point to screen space.
func (t Transform) Apply(x, y float64) (sx, sy float64) {
	return x*t.Scale + t.TX, y*t.Scale + t.TY
}

// Invert maps a screen-space point back to graph space.
func (t Transform) Invert(sx, sy float64) (x, y float64) {
	return (sx - t.TX) / t.Scale, (sy - t.TY) / t.Scale
}

// ZoomAround scales by factor while keeping the screen point (sx, sy)
// fixed. The resulting scale saturates at [MinScale, MaxScale].
func (t Transform) ZoomAround(sx, sy, factor float64) Transform {
	scale := clampScale(t.Scale * factor)
	gx, gy := t.Invert(sx, sy)
	return Transform{
		Scale: scale,
		TX:    sx - gx*scale,
		TY:    sy - gy*scale,
	}
}

// Translated returns the transform shifted by (dx, dy) screen pixels.
func (t Transform) Translated(dx, dy float64) Transform {
	t.TX += dx
	t.TY += dy
	return t
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
