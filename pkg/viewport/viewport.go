// Package viewport tracks the host container's pixel box and notifies size
// changes to interested components, chiefly the simulation engine's
// centering force.
package viewport

// DefaultHeight is used when the host supplies no explicit height; width
// normally fills the container.
const DefaultHeight = 500

// Viewport holds the current pixel dimensions. Resize is idempotent under
// repeated identical size reports, so hosts may forward every resize event
// they see without debouncing.
type Viewport struct {
	width, height float64
	listeners     []func(width, height float64)
}

// New creates a viewport with the given initial dimensions. A non-positive
// height falls back to DefaultHeight.
func New(width, height float64) *Viewport {
	if height <= 0 {
		height = DefaultHeight
	}
	return &Viewport{width: width, height: height}
}

// Resize records new dimensions and notifies listeners. Reporting the
// current size again is a no-op.
func (v *Viewport) Resize(width, height float64) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	for _, fn := range v.listeners {
		fn(width, height)
	}
}

// OnResize registers a listener for dimension changes.
func (v *Viewport) OnResize(fn func(width, height float64)) {
	v.listeners = append(v.listeners, fn)
}

// Width returns the current width in pixels.
func (v *Viewport) Width() float64 { return v.width }

// Height returns the current height in pixels.
func (v *Viewport) Height() float64 { return v.height }

// Center returns the geometric center of the viewport.
func (v *Viewport) Center() (x, y float64) {
	return v.width / 2, v.height / 2
}
