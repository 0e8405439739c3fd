// Package term runs the renderers in a text console. Each character cell
// stands in for a block of pixels; surfaces accumulate light per cell and
// the runner composites them additively.
package term

import (
	"image/color"
	"math"

	"github.com/olivierh59500/particle-field/internal/canvas"
)

// light is accumulated linear colour for one cell.
type light struct{ r, g, b float64 }

type label struct {
	col, row int
	text     string
}

// Surface rasterizes drawing calls onto a cell grid. Coordinates are in
// pixels, scaled down by the cell size.
type Surface struct {
	cols, rows   int
	cellW, cellH int
	cells        []light
	labels       []label
}

var _ canvas.Surface = (*Surface)(nil)

func NewSurface(cols, rows, cellW, cellH int) *Surface {
	s := &Surface{cellW: max(cellW, 1), cellH: max(cellH, 1)}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size and clears it.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]light, s.cols*s.rows)
	s.labels = s.labels[:0]
}

// Bounds reports the size in pixels.
func (s *Surface) Bounds() (int, int) { return s.cols * s.cellW, s.rows * s.cellH }

// Grid reports the size in cells.
func (s *Surface) Grid() (cols, rows int) { return s.cols, s.rows }

func (s *Surface) Clear() {
	clear(s.cells)
	s.labels = s.labels[:0]
}

// At returns the accumulated colour of a cell, clamped to 8 bits.
func (s *Surface) At(col, row int) color.NRGBA {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return color.NRGBA{}
	}
	l := s.cells[row*s.cols+col]
	return color.NRGBA{channel(l.r), channel(l.g), channel(l.b), 0xff}
}

func channel(v float64) uint8 {
	return uint8(math.Round(canvas.Clamp01(v/255) * 255))
}

func (s *Surface) cellOf(x, y float64) (int, int, bool) {
	if !(x >= 0) || !(y >= 0) {
		return 0, 0, false
	}
	col, row := int(x/float64(s.cellW)), int(y/float64(s.cellH))
	return col, row, col < s.cols && row < s.rows
}

func (s *Surface) add(col, row int, c color.NRGBA, weight float64) {
	a := float64(c.A) / 255 * weight
	if a <= 0 {
		return
	}
	l := &s.cells[row*s.cols+col]
	l.r += float64(c.R) * a
	l.g += float64(c.G) * a
	l.b += float64(c.B) * a
}

func (s *Surface) plot(x, y float64, c color.NRGBA, weight float64) {
	if col, row, ok := s.cellOf(x, y); ok {
		s.add(col, row, c, weight)
	}
}

func (s *Surface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	s.segment(x0, y0, x1, y1, canvas.ToNRGBA(c), -1, -1)
}

// segment lights every cell the segment crosses once, skipping the cell at
// (skipCol, skipRow) so joined polyline segments do not double the joint.
func (s *Surface) segment(x0, y0, x1, y1 float64, c color.NRGBA, skipCol, skipRow int) (int, int) {
	steps := int(math.Max(math.Abs(x1-x0)/float64(s.cellW), math.Abs(y1-y0)/float64(s.cellH))*2) + 1
	if steps > 4096 {
		steps = 4096
	}
	lastCol, lastRow := skipCol, skipRow
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row, ok := s.cellOf(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if !ok || (col == lastCol && row == lastRow) {
			continue
		}
		s.add(col, row, c, 1)
		lastCol, lastRow = col, row
	}
	return lastCol, lastRow
}

func (s *Surface) Polyline(pts []canvas.Point, width float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	nc := canvas.ToNRGBA(c)
	col, row := -1, -1
	for i := 1; i < len(pts); i++ {
		col, row = s.segment(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, nc, col, row)
	}
}

// FillCircle lights the cells whose centres fall inside the disc. A disc
// smaller than a cell contributes in proportion to its area.
func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	if !(r > 0) {
		return
	}
	nc := canvas.ToNRGBA(c)
	cw, ch := float64(s.cellW), float64(s.cellH)
	if area := math.Pi * r * r; area < cw*ch {
		s.plot(x, y, nc, area/(cw*ch))
		return
	}
	c0, r0 := int(math.Floor((x-r)/cw)), int(math.Floor((y-r)/ch))
	c1, r1 := int(math.Floor((x+r)/cw)), int(math.Floor((y+r)/ch))
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			cx, cy := (float64(col)+0.5)*cw, (float64(row)+0.5)*ch
			if math.Hypot(cx-x, cy-y) <= r {
				s.add(col, row, nc, 1)
			}
		}
	}
}

func (s *Surface) StrokeCircle(x, y, r, width float64, c color.Color) {
	if !(r > 0) {
		return
	}
	pts := canvas.Ellipse(x, y, r, r, 64)
	s.Polyline(pts, width, c)
}

func (s *Surface) Text(text string, x, y float64) {
	col, row, ok := s.cellOf(x, y)
	if !ok {
		return
	}
	s.labels = append(s.labels, label{col, row, text})
}
