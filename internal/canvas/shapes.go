package canvas

import (
	"image/color"
	"math"
)

// glowStops approximate a radial gradient with concentric discs, drawn
// outermost first. radius is a fraction of the disc radius, alpha a fraction
// of the requested opacity.
var glowStops = [...]struct{ radius, alpha float64 }{
	{1.0, 0.12},
	{0.7, 0.35},
	{0.4, 0.6},
	{0.15, 1.0},
}

// Glow draws a disc whose opacity falls off from the centre to the rim.
func Glow(s Surface, x, y, r float64, c color.NRGBA, alpha float64) {
	if alpha <= 0 || r <= 0 {
		return
	}
	for _, st := range glowStops {
		s.FillCircle(x, y, r*st.radius, Fade(c, alpha*st.alpha))
	}
}

// Ellipse returns a closed polyline approximating an axis-aligned ellipse.
func Ellipse(cx, cy, rx, ry float64, segments int) []Point {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		pts = append(pts, Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)})
	}
	return pts
}
