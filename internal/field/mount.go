package field

import (
	"errors"
	"time"

	"github.com/olivierh59500/particle-field/internal/canvas"
	"github.com/olivierh59500/particle-field/internal/frame"
)

var (
	// ErrNoSurface is returned by Mount when there is nothing to draw on yet.
	// Callers skip the instance and may mount again later.
	ErrNoSurface = errors.New("field: no drawing surface")
	// ErrNoHost is returned by Mount without a scheduler to drive the engine.
	ErrNoHost = errors.New("field: no host")
)

// Instance is an engine mounted on a host: one per-frame callback plus the
// pointer and resize listeners feeding it.
type Instance struct {
	Engine   *Engine
	surface  canvas.Surface
	teardown frame.Teardown
}

// Mount creates an engine for cfg and wires it to host. When cfg has no size
// the surface bounds are used. With cfg.Burst set the reveal sequence starts
// immediately. Unmount releases everything Mount registered.
func Mount(host *frame.Host, s canvas.Surface, cfg Config) (*Instance, error) {
	if host == nil || host.Frames == nil || host.Events == nil {
		return nil, ErrNoHost
	}
	if s == nil {
		return nil, ErrNoSurface
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := s.Bounds()
		cfg.Width, cfg.Height = float64(w), float64(h)
	}

	in := &Instance{Engine: New(cfg), surface: s}
	e := in.Engine

	h := host.Frames.Request(func(time.Time) {
		e.Tick(e.Pointer())
		e.Render(s)
	})
	in.teardown.Add(func() { host.Frames.Cancel(h) })

	listen := func(k frame.Kind, fn func(frame.Event)) {
		l := host.Events.Listen(k, fn)
		in.teardown.Add(func() { host.Events.Remove(l) })
	}
	listen(frame.PointerMove, func(ev frame.Event) { e.PointerMove(ev.X, ev.Y) })
	listen(frame.PointerDown, func(ev frame.Event) { e.PointerDown(ev.X, ev.Y) })
	listen(frame.Resize, func(ev frame.Event) {
		w, h := s.Bounds()
		e.Resize(float64(w), float64(h))
	})

	if e.cfg.Burst {
		e.Reveal()
	}
	return in, nil
}

// Unmount deregisters the frame callback and every listener. It is safe to
// call more than once.
func (in *Instance) Unmount() {
	if in == nil {
		return
	}
	in.teardown.Run()
}

// Mounted reports whether the instance is still attached to its host.
func (in *Instance) Mounted() bool {
	return in != nil && !in.teardown.Done()
}
