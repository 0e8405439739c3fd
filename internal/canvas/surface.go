// Package canvas defines the drawing surface the particle renderers paint on,
// plus the colour and geometry helpers they share.
package canvas

import "image/color"

// Point is a position in surface pixel space.
type Point struct {
	X, Y float64
}

// Surface is a 2D drawing target owned by a single renderer.
//
// Implementations exist for ebiten images (internal/screen), terminal cells
// (internal/term) and an in-memory recorder used by tests.
type Surface interface {
	// Bounds returns the surface size in pixels.
	Bounds() (width, height int)
	// Clear erases everything drawn since the last Clear.
	Clear()
	Line(x0, y0, x1, y1, width float64, c color.Color)
	// Polyline strokes consecutive points. Fewer than two points draw nothing.
	Polyline(pts []Point, width float64, c color.Color)
	FillCircle(x, y, r float64, c color.Color)
	StrokeCircle(x, y, r, width float64, c color.Color)
	Text(s string, x, y float64)
}
