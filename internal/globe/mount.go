package globe

import (
	"errors"
	"time"

	"github.com/olivierh59500/particle-field/internal/canvas"
	"github.com/olivierh59500/particle-field/internal/frame"
)

var (
	ErrNoSurface = errors.New("globe: no drawing surface")
	ErrNoHost    = errors.New("globe: no host")
)

// Instance is a globe attached to a host.
type Instance struct {
	Globe    *Globe
	teardown frame.Teardown
}

// Mount creates a globe and registers its frame callback, pointer listener
// and resize listener on host.
func Mount(host *frame.Host, s canvas.Surface, cfg Config) (*Instance, error) {
	if host == nil || host.Frames == nil || host.Events == nil {
		return nil, ErrNoHost
	}
	if s == nil {
		return nil, ErrNoSurface
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = s.Bounds()
	}

	in := &Instance{Globe: New(cfg)}
	g := in.Globe

	h := host.Frames.Request(func(time.Time) {
		g.Tick()
		g.Render(s)
	})
	in.teardown.Add(func() { host.Frames.Cancel(h) })

	l := host.Events.Listen(frame.PointerMove, func(ev frame.Event) { g.PointerMove(ev.X, ev.Y) })
	in.teardown.Add(func() { host.Events.Remove(l) })

	rl := host.Events.Listen(frame.Resize, func(frame.Event) {
		g.Resize(s.Bounds())
		if g.cfg.Locate != nil {
			g.SetOffset(g.cfg.Locate())
		}
	})
	in.teardown.Add(func() { host.Events.Remove(rl) })
	return in, nil
}

// Unmount releases the callback and listeners. Safe to call twice.
func (in *Instance) Unmount() {
	if in == nil {
		return
	}
	in.teardown.Run()
}

// Mounted reports whether the globe is still attached.
func (in *Instance) Mounted() bool {
	return in != nil && !in.teardown.Done()
}
