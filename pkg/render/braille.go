package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cell geometry: each terminal cell carries a 2x4 dot grid, so a
// canvas of C columns and R rows exposes 2C x 4R logical pixels.
const (
	brailleBase   = 0x2800
	cellPixelsX   = 2
	cellPixelsY   = 4
	defaultDotHex = "#e5e7eb"
)

// Dot bit offsets in the braille block, indexed [y][x].
var brailleBits = [cellPixelsY][cellPixelsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type cellText struct {
	col, row int
	text     string
	color    string
}

// BrailleCanvas implements Canvas on a grid of braille cells for
// terminal hosts. Draw calls address logical pixels; Render emits the
// styled cell rows.
type BrailleCanvas struct {
	cols, rows int
	dots       []uint8
	colors     []string
	labels     []cellText
	styles     map[string]lipgloss.Style
}

// NewBrailleCanvas creates a canvas of cols x rows terminal cells.
func NewBrailleCanvas(cols, rows int) *BrailleCanvas {
	return &BrailleCanvas{
		cols:   cols,
		rows:   rows,
		dots:   make([]uint8, cols*rows),
		colors: make([]string, cols*rows),
		styles: make(map[string]lipgloss.Style),
	}
}

// Resize changes the cell grid, dropping current content.
func (c *BrailleCanvas) Resize(cols, rows int) {
	c.cols, c.rows = cols, rows
	c.dots = make([]uint8, cols*rows)
	c.colors = make([]string, cols*rows)
	c.labels = nil
}

// Width returns the logical pixel width.
func (c *BrailleCanvas) Width() float64 { return float64(c.cols * cellPixelsX) }

// Height returns the logical pixel height.
func (c *BrailleCanvas) Height() float64 { return float64(c.rows * cellPixelsY) }

// Clear erases all dots and labels.
func (c *BrailleCanvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
		c.colors[i] = ""
	}
	c.labels = c.labels[:0]
}

func (c *BrailleCanvas) setPixel(x, y int, color string) {
	if x < 0 || y < 0 || x >= c.cols*cellPixelsX || y >= c.rows*cellPixelsY {
		return
	}
	idx := (y/cellPixelsY)*c.cols + x/cellPixelsX
	c.dots[idx] |= brailleBits[y%cellPixelsY][x%cellPixelsX]
	c.colors[idx] = color
}

// Line draws a segment with Bresenham stepping.
func (c *BrailleCanvas) Line(x1, y1, x2, y2 float64, s Style) {
	color := s.Stroke
	if color == "" {
		color = s.Fill
	}

	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	ix2, iy2 := int(math.Round(x2)), int(math.Round(y2))

	dx := abs(ix2 - ix1)
	dy := -abs(iy2 - iy1)
	sx, sy := 1, 1
	if ix1 > ix2 {
		sx = -1
	}
	if iy1 > iy2 {
		sy = -1
	}
	err := dx + dy

	x, y := ix1, iy1
	for {
		c.setPixel(x, y, color)
		if x == ix2 && y == iy2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Circle draws a filled disk when Fill is set, otherwise a ring.
func (c *BrailleCanvas) Circle(cx, cy, r float64, s Style) {
	if s.Fill != "" {
		c.fillDisk(cx, cy, r, s.Fill)
		return
	}
	color := s.Stroke
	half := math.Max(s.StrokeWidth/2, 0.5)
	minX, maxX := int(math.Floor(cx-r-half)), int(math.Ceil(cx+r+half))
	minY, maxY := int(math.Floor(cy-r-half)), int(math.Ceil(cy+r+half))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if d >= r-half && d <= r+half {
				c.setPixel(x, y, color)
			}
		}
	}
}

func (c *BrailleCanvas) fillDisk(cx, cy, r float64, color string) {
	minX, maxX := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	minY, maxY := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				c.setPixel(x, y, color)
			}
		}
	}
}

// Text places a label horizontally centered at the cell under cx.
func (c *BrailleCanvas) Text(cx, y float64, text string, s Style) {
	col := int(cx)/cellPixelsX - len(text)/2
	row := int(y) / cellPixelsY
	if row < 0 || row >= c.rows {
		return
	}
	c.labels = append(c.labels, cellText{col: col, row: row, text: text, color: s.Fill})
}

// Render builds the styled terminal frame, one string row per cell row.
func (c *BrailleCanvas) Render() string {
	// Labels overlay dots.
	overlay := make(map[int]map[int]cellChar)
	for _, l := range c.labels {
		if overlay[l.row] == nil {
			overlay[l.row] = make(map[int]cellChar)
		}
		for i, ch := range []rune(l.text) {
			col := l.col + i
			if col >= 0 && col < c.cols {
				overlay[l.row][col] = cellChar{ch: ch, color: l.color}
			}
		}
	}

	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			if cc, ok := overlay[row][col]; ok {
				b.WriteString(c.styled(string(cc.ch), cc.color))
				continue
			}
			dots := c.dots[row*c.cols+col]
			if dots == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.styled(string(rune(brailleBase+int(dots))), c.colors[row*c.cols+col]))
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type cellChar struct {
	ch    rune
	color string
}

func (c *BrailleCanvas) styled(s, color string) string {
	if color == "" {
		color = defaultDotHex
	}
	style, ok := c.styles[color]
	if !ok {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		c.styles[color] = style
	}
	return style.Render(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
