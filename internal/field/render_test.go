package field

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/olivierh59500/particle-field/internal/canvas"
	"github.com/olivierh59500/particle-field/internal/frame"
)

var testNow = time.Unix(0, 0)

func connectionConfig() Config {
	c := quietConfig()
	c.Connections = true
	c.ConnectionDistance = 120
	return c
}

func TestConnectionDrawnOnlyWithinDistance(t *testing.T) {
	tests := []struct {
		d    float64
		want int
	}{
		{0, 1},
		{50, 1},
		{119.9, 1},
		{120, 0},
		{300, 0},
	}
	for _, tt := range tests {
		e := New(connectionConfig())
		addParticle(t, e, Particle{X: 100, Y: 100, Size: 2})
		addParticle(t, e, Particle{X: 100 + tt.d, Y: 100, Size: 2})

		r := canvas.NewRecorder(800, 600)
		e.Render(r)
		if got := r.Count(canvas.OpLine); got != tt.want {
			t.Errorf("d=%v: %d connection lines, want %d", tt.d, got, tt.want)
		}
	}
}

func TestConnectionAlphaDecreasesWithDistance(t *testing.T) {
	const maxDist = 120.0
	peak, ok := ConnectionAlpha(0, maxDist)
	if !ok || peak != connectionAlphaPeak {
		t.Fatalf("alpha at d=0 = %v (drawn=%v), want %v", peak, ok, connectionAlphaPeak)
	}
	prev := peak
	for d := 1.0; d < maxDist; d++ {
		a, ok := ConnectionAlpha(d, maxDist)
		if !ok {
			t.Fatalf("d=%v inside the threshold was not drawn", d)
		}
		if a >= prev {
			t.Fatalf("alpha not decreasing at d=%v: %v >= %v", d, a, prev)
		}
		prev = a
	}
	if a, ok := ConnectionAlpha(maxDist, maxDist); ok || a != 0 {
		t.Fatalf("alpha at the threshold = %v (drawn=%v), want 0 and not drawn", a, ok)
	}
	if _, ok := ConnectionAlpha(math.NaN(), maxDist); ok {
		t.Fatal("NaN distance was drawn")
	}
}

func TestConnectionGridMatchesBruteForce(t *testing.T) {
	e := New(connectionConfig())
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 150; i++ {
		// Include a band outside the field, where wrapped particles live.
		addParticle(t, e, Particle{
			X:    rng.Float64()*900 - 50,
			Y:    rng.Float64()*700 - 50,
			Size: 2,
		})
	}

	want := 0
	ps := e.Particles()
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if _, ok := ConnectionAlpha(math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y), 120); ok {
				want++
			}
		}
	}

	r := canvas.NewRecorder(800, 600)
	e.Render(r)
	if got := r.Count(canvas.OpLine); got != want {
		t.Fatalf("grid drew %d connections, brute force finds %d", got, want)
	}

	// A second frame reuses the grid and must not double count.
	r.Reset()
	e.Render(r)
	if got := r.Count(canvas.OpLine); got != want {
		t.Fatalf("second frame drew %d connections, want %d", got, want)
	}
}

func TestConnectionGridHoldsOnlyOccupiedCells(t *testing.T) {
	e := New(connectionConfig())
	p := addParticle(t, e, Particle{X: 10, Y: 10, Size: 2})
	addParticle(t, e, Particle{X: 20, Y: 10, Size: 2})

	r := canvas.NewRecorder(800, 600)
	// Walk one particle across the field; each frame it sits in a new cell.
	for i := 0; i < 6; i++ {
		p.X = 10 + float64(i)*130
		r.Reset()
		e.Render(r)

		want := 2
		if i == 0 {
			want = 1
		}
		if len(e.bins) != want {
			t.Fatalf("step %d: grid holds %d cells, want %d", i, len(e.bins), want)
		}
		for c, idx := range e.bins {
			if len(idx) == 0 {
				t.Fatalf("step %d: empty cell %v kept", i, c)
			}
		}
	}
}

func TestNoConnectionsWhenDisabled(t *testing.T) {
	cfg := connectionConfig()
	cfg.Connections = false
	e := New(cfg)
	addParticle(t, e, Particle{X: 100, Y: 100, Size: 2})
	addParticle(t, e, Particle{X: 110, Y: 100, Size: 2})

	r := canvas.NewRecorder(800, 600)
	e.Render(r)
	if r.Count(canvas.OpLine) != 0 {
		t.Fatal("connections drawn with the toggle off")
	}
}

func TestRenderFadesWithLife(t *testing.T) {
	e := New(quietConfig())
	addParticle(t, e, Particle{X: 100, Y: 100, Size: 4, Life: 100, MaxLife: 100, Color: Palette(ThemeLanding)[0]})
	addParticle(t, e, Particle{X: 300, Y: 100, Size: 4, Life: 25, MaxLife: 100, Color: Palette(ThemeLanding)[0]})

	r := canvas.NewRecorder(800, 600)
	e.Render(r)

	var fresh, old uint8
	for _, op := range r.Ops() {
		if op.Kind != canvas.OpFillCircle {
			continue
		}
		if op.Color.A > fresh && op.Points[0].X == 100 {
			fresh = op.Color.A
		}
		if op.Color.A > old && op.Points[0].X == 300 {
			old = op.Color.A
		}
	}
	if fresh == 0 || old == 0 || old >= fresh {
		t.Fatalf("peak alpha fresh=%d old=%d, want the older particle fainter", fresh, old)
	}
}

func TestRenderDrawsTrails(t *testing.T) {
	cfg := quietConfig()
	cfg.TrailCap = 5
	e := New(cfg)
	e.SpawnBurst(Vec{400, 300}, 4, Range{2, 2})
	for i := 0; i < 3; i++ {
		e.Tick(Pointer{})
	}

	r := canvas.NewRecorder(800, 600)
	e.Render(r)
	if got := r.Count(canvas.OpPolyline); got != 4 {
		t.Fatalf("trail polylines = %d, want 4", got)
	}
	for _, op := range r.Ops() {
		if op.Kind == canvas.OpPolyline && len(op.Points) != 3 {
			t.Fatalf("trail has %d points, want 3", len(op.Points))
		}
	}
}

func TestEmptyFieldRendersOnlyClear(t *testing.T) {
	cfg := quietConfig()
	cfg.Count = 0
	cfg.Active = false
	e := New(cfg)
	r := canvas.NewRecorder(800, 600)

	for n := 0; n < 30; n++ {
		r.Reset()
		e.Tick(Pointer{X: 10, Y: 10, Valid: true})
		e.Render(r)
		ops := r.Ops()
		if len(ops) != 1 || ops[0].Kind != canvas.OpClear {
			t.Fatalf("frame %d: ops = %+v, want a single clear", n, ops)
		}
	}
}

func TestRenderNilSurface(t *testing.T) {
	e := New(DefaultConfig())
	e.Render(nil)
}

func TestMountLifecycle(t *testing.T) {
	host := frame.NewHost()
	rec := canvas.NewRecorder(640, 480)

	cfg := quietConfig()
	cfg.Width, cfg.Height = 0, 0
	cfg.Count = 5
	in, err := Mount(host, rec, cfg)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if c := in.Engine.Config(); c.Width != 640 || c.Height != 480 {
		t.Fatalf("engine size = %vx%v, want surface bounds 640x480", c.Width, c.Height)
	}
	if host.Frames.Len() != 1 || host.Events.Len() != 3 {
		t.Fatalf("registered %d callbacks and %d listeners, want 1 and 3", host.Frames.Len(), host.Events.Len())
	}

	host.Frames.Advance(testNow)
	if in.Engine.Frame() != 1 {
		t.Fatalf("engine frame = %d, want 1", in.Engine.Frame())
	}
	if rec.Count(canvas.OpClear) != 1 {
		t.Fatalf("frame callback did not render")
	}

	host.Events.Emit(frame.Event{Kind: frame.PointerDown, X: 20, Y: 30})
	if got := in.Engine.Stats().Count(Burst); got != clickBurstCount {
		t.Fatalf("click produced %d burst particles, want %d", got, clickBurstCount)
	}

	rec.W, rec.H = 320, 240
	host.Events.Emit(frame.Event{Kind: frame.Resize, Width: 320, Height: 240})
	if c := in.Engine.Config(); c.Width != 320 || c.Height != 240 {
		t.Fatalf("engine size after resize = %vx%v, want 320x240", c.Width, c.Height)
	}

	in.Unmount()
	if in.Mounted() {
		t.Fatal("Mounted() true after Unmount")
	}
	if host.Frames.Len() != 0 || host.Events.Len() != 0 {
		t.Fatalf("leaked %d callbacks and %d listeners", host.Frames.Len(), host.Events.Len())
	}
	in.Unmount()

	before := in.Engine.Frame()
	host.Frames.Advance(testNow)
	if in.Engine.Frame() != before {
		t.Fatal("unmounted engine still ticking")
	}
}

func TestMountWithoutSurface(t *testing.T) {
	host := frame.NewHost()
	if _, err := Mount(host, nil, DefaultConfig()); err != ErrNoSurface {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
	if host.Frames.Len() != 0 || host.Events.Len() != 0 {
		t.Fatal("failed mount left registrations behind")
	}
	if _, err := Mount(nil, canvas.NewRecorder(1, 1), DefaultConfig()); err != ErrNoHost {
		t.Fatalf("err = %v, want ErrNoHost", err)
	}
}

func TestMountBurstRevealsOnce(t *testing.T) {
	host := frame.NewHost()
	cfg := quietConfig()
	cfg.Burst = true
	in, err := Mount(host, canvas.NewRecorder(800, 600), cfg)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	defer in.Unmount()

	if got := in.Engine.Stats().Count(Burst); got != revealBurstCount {
		t.Fatalf("burst particles after mount = %d, want %d", got, revealBurstCount)
	}
	if in.Engine.Reveal() {
		t.Fatal("reveal fired a second time")
	}
}
