// Package render draws the current simulation state onto an abstract
// canvas. It holds no simulation logic: every frame is a deterministic,
// full redraw of positions the engine owns, so no artifacts from prior
// snapshots can survive.
package render

// Style carries the visual attributes for a draw call. Colors are hex
// strings ("#rrggbb"); an empty string means "not painted".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Canvas is the minimal drawing surface the renderer needs. Hosts back it
// with whatever they have: a pixel framebuffer, a braille cell grid, an
// SVG writer.
type Canvas interface {
	// Clear erases the whole surface.
	Clear()
	// Line draws a straight segment between two points.
	Line(x1, y1, x2, y2 float64, s Style)
	// Circle draws a circle centered at (cx, cy).
	Circle(cx, cy, r float64, s Style)
	// Text draws a string horizontally centered at cx with baseline y.
	Text(cx, y float64, text string, s Style)
}
