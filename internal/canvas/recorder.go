package canvas

import "image/color"

// OpKind identifies a recorded drawing call.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpLine
	OpPolyline
	OpFillCircle
	OpStrokeCircle
	OpText
)

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	Points []Point // line endpoints, polyline vertices, or circle centre
	Radius float64
	Width  float64
	Color  color.NRGBA
	Text   string
}

// Recorder is a Surface that keeps every call in memory instead of drawing.
type Recorder struct {
	W, H int
	ops  []Op
}

// NewRecorder returns a recorder reporting the given bounds.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Bounds() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.ops = append(r.ops, Op{Kind: OpClear})
}

func (r *Recorder) Line(x0, y0, x1, y1, width float64, c color.Color) {
	r.ops = append(r.ops, Op{
		Kind:   OpLine,
		Points: []Point{{x0, y0}, {x1, y1}},
		Width:  width,
		Color:  ToNRGBA(c),
	})
}

func (r *Recorder) Polyline(pts []Point, width float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	r.ops = append(r.ops, Op{
		Kind:   OpPolyline,
		Points: append([]Point(nil), pts...),
		Width:  width,
		Color:  ToNRGBA(c),
	})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillCircle, Points: []Point{{x, y}}, Radius: radius, Color: ToNRGBA(c)})
}

func (r *Recorder) StrokeCircle(x, y, radius, width float64, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpStrokeCircle, Points: []Point{{x, y}}, Radius: radius, Width: width, Color: ToNRGBA(c)})
}

func (r *Recorder) Text(s string, x, y float64) {
	r.ops = append(r.ops, Op{Kind: OpText, Points: []Point{{x, y}}, Text: s})
}

// Ops returns the calls recorded since the last Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Count returns how many recorded calls have the given kind.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }
