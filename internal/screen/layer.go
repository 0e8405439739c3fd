package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-field/internal/canvas"
)

// Layer is an offscreen image one renderer owns exclusively. The game
// composites every layer onto the window each frame.
type Layer struct {
	img  *ebiten.Image
	X, Y float64

	// Place positions the layer for a window size. Layers without one
	// fill the window and are resized with it.
	Place func(winW, winH int) (x, y float64)
}

var _ canvas.Surface = (*Layer)(nil)

// NewLayer allocates a w by h layer at the origin.
func NewLayer(w, h int) *Layer {
	return &Layer{img: ebiten.NewImage(max(w, 1), max(h, 1))}
}

func (l *Layer) Image() *ebiten.Image { return l.img }

func (l *Layer) Bounds() (int, int) {
	b := l.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image when the size changes.
func (l *Layer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if cw, ch := l.Bounds(); cw == w && ch == h {
		return
	}
	l.img.Deallocate()
	l.img = ebiten.NewImage(w, h)
}

func (l *Layer) Clear() { l.img.Clear() }

func (l *Layer) Line(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(l.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (l *Layer) Polyline(pts []canvas.Point, width float64, c color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(l.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
	}
}

func (l *Layer) FillCircle(x, y, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(l.img, float32(x), float32(y), float32(r), c, true)
}

func (l *Layer) StrokeCircle(x, y, r, width float64, c color.Color) {
	if r <= 0 {
		return
	}
	vector.StrokeCircle(l.img, float32(x), float32(y), float32(r), float32(width), c, true)
}

// Text uses the debug font; labels are short counts.
func (l *Layer) Text(s string, x, y float64) {
	ebitenutil.DebugPrintAt(l.img, s, int(x), int(y))
}
