// Package globe renders a fixed set of candidate locations on a slowly
// rotating sphere. Unlike the particle field there is no lifecycle: the
// dataset is static and only the rotation angle and pulse phase change.
package globe

import (
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/olivierh59500/particle-field/internal/canvas"
)

const (
	DefaultSize   = 300
	DefaultRadius = 120.0
	DefaultSpeed  = 0.5 // degrees per frame

	verticalSquash = 0.8
	pulsePhase     = 0.005 // radians per millisecond
	springFreq     = 6.0
	springDamping  = 1.0 // critically damped
	gridSegments   = 48
)

var (
	outlineColor = color.NRGBA{0x37, 0x41, 0x51, 0xff}
	gridColor    = color.NRGBA{0x1f, 0x29, 0x37, 0xff}
	pointColor   = color.NRGBA{124, 58, 237, 0xff}
)

// Location is one weighted point on the globe.
type Location struct {
	City  string
	Lat   float64 // degrees, north positive
	Lng   float64 // degrees, east positive
	Count int
}

// Candidates is the default dataset.
var Candidates = []Location{
	{"New York", 40.7128, -74.006, 45},
	{"San Francisco", 37.7749, -122.4194, 38},
	{"London", 51.5074, -0.1278, 32},
	{"Berlin", 52.52, 13.405, 28},
	{"Toronto", 43.6532, -79.3832, 25},
	{"Tokyo", 35.6762, 139.6503, 22},
	{"Sydney", -33.8688, 151.2093, 18},
	{"Moscow", 55.7558, 37.6176, 15},
}

// Config parameterizes a globe.
type Config struct {
	Width, Height int
	Radius        float64
	Speed         float64 // Rotation in degrees per frame
	Locations     []Location
	Labels        bool
	FPS           int
	Clock         func() time.Time // Wall clock for the pulse; defaults to time.Now
	// OffsetX and OffsetY place the globe's surface on screen, so pointer
	// samples in screen space can be hit-tested.
	OffsetX, OffsetY float64
	// Locate, when set, reports the surface origin again after a resize.
	Locate func() (x, y float64)
}

// DefaultConfig returns a 300x300 globe with the default dataset.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultSize,
		Height:    DefaultSize,
		Radius:    DefaultRadius,
		Speed:     DefaultSpeed,
		Locations: Candidates,
		Labels:    true,
		FPS:       60,
	}
}

// Globe is the rotating projection state.
type Globe struct {
	cfg      Config
	cx, cy   float64
	rotation float64
	speed    float64
	speedVel float64
	spring   harmonica.Spring
	hover    bool
}

// New creates a globe. Missing settings fall back to DefaultConfig values.
func New(cfg Config) *Globe {
	def := DefaultConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.Locations == nil {
		cfg.Locations = def.Locations
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Globe{
		cfg:    cfg,
		cx:     float64(cfg.Width) / 2,
		cy:     float64(cfg.Height) / 2,
		speed:  cfg.Speed,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), springFreq, springDamping),
	}
}

// Rotation returns the current rotation in degrees, in [0, 360).
func (g *Globe) Rotation() float64 { return g.rotation }

// Speed returns the current rotation speed in degrees per frame.
func (g *Globe) Speed() float64 { return g.speed }

// Hovered reports whether the pointer is over the globe.
func (g *Globe) Hovered() bool { return g.hover }

// Tick eases the rotation speed toward its target (zero while hovered) and
// advances the rotation by one frame.
func (g *Globe) Tick() {
	target := g.cfg.Speed
	if g.hover {
		target = 0
	}
	g.speed, g.speedVel = g.spring.Update(g.speed, g.speedVel, target)
	g.rotation = math.Mod(g.rotation+g.speed, 360)
	if g.rotation < 0 {
		g.rotation += 360
	}
}

// Resize recentres the globe on a w by h surface. The radius is kept.
func (g *Globe) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	g.cfg.Width, g.cfg.Height = w, h
	g.cx, g.cy = float64(w)/2, float64(h)/2
}

// SetOffset moves the globe's surface origin in screen space.
func (g *Globe) SetOffset(x, y float64) { g.cfg.OffsetX, g.cfg.OffsetY = x, y }

// PointerMove hit-tests a screen-space pointer sample against the disc.
func (g *Globe) PointerMove(x, y float64) {
	dx := x - g.cfg.OffsetX - g.cx
	dy := y - g.cfg.OffsetY - g.cy
	g.hover = math.Hypot(dx, dy) <= g.cfg.Radius
}

// Project maps loc onto the surface at the current rotation. It reports
// false for points on the far hemisphere.
func (g *Globe) Project(loc Location) (x, y float64, visible bool) {
	lng := normalizeLng(loc.Lng + g.rotation)
	latRad := loc.Lat * math.Pi / 180
	lngRad := lng * math.Pi / 180

	x = g.cx + (lng/180)*g.cfg.Radius*math.Cos(latRad)
	y = g.cy - (loc.Lat/90)*g.cfg.Radius*verticalSquash
	return x, y, math.Cos(lngRad) > 0
}

// Pulse returns the size and opacity of point i at time now.
func Pulse(i int, now time.Time) (size, alpha float64) {
	ms := float64(now.UnixNano()) / float64(time.Millisecond)
	s := math.Sin(math.Mod(ms*pulsePhase, 2*math.Pi) + float64(i))
	return 3 + s*2, 0.8 + s*0.2
}

// Render draws the outline, the graticule and every visible location.
func (g *Globe) Render(s canvas.Surface) {
	if s == nil {
		return
	}
	s.Clear()
	r := g.cfg.Radius

	s.StrokeCircle(g.cx, g.cy, r, 2, outlineColor)

	for lat := -60; lat <= 60; lat += 30 {
		y := g.cy + (float64(lat)/90)*r*verticalSquash
		rx := r * math.Cos(float64(lat)*math.Pi/180)
		s.Polyline(canvas.Ellipse(g.cx, y, rx, r*0.3, gridSegments), 1, gridColor)
	}
	for lng := 0; lng < 360; lng += 30 {
		a := (float64(lng) + g.rotation) * math.Pi / 180
		s.Polyline(canvas.Ellipse(g.cx, g.cy, r*math.Abs(math.Cos(a)), r, gridSegments), 1, gridColor)
	}

	now := g.cfg.Clock()
	for i, loc := range g.cfg.Locations {
		x, y, ok := g.Project(loc)
		if !ok {
			continue
		}
		size, alpha := Pulse(i, now)
		s.FillCircle(x, y, size, canvas.Fade(pointColor, alpha))
		s.FillCircle(x, y, size*2, canvas.Fade(pointColor, 0.3))
		if g.cfg.Labels {
			label := strconv.Itoa(loc.Count)
			s.Text(label, x-float64(len(label))*3, y-15)
		}
	}
}

// normalizeLng maps any longitude to [-180, 180).
func normalizeLng(lng float64) float64 {
	l := math.Mod(lng+180, 360)
	if l < 0 {
		l += 360
	}
	return l - 180
}
