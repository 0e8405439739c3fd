// Package field implements the particle field renderer: a configurable
// particle engine advanced one frame at a time and drawn onto a
// canvas.Surface.
//
// One Engine replaces the ambient backdrop, the page-wide field and the
// bouncing showcase field; the differences between them are expressed in
// Config (boundary policy, connection lines, kind physics, respawn).
package field

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
)

// Pointer is the last sampled cursor position. The zero value means there is
// no cursor over the surface.
type Pointer struct {
	X, Y  float64
	Valid bool
}

// Stats is a snapshot of the particle population.
type Stats struct {
	Frame uint64
	Total int
	Kinds [kindCount]int
}

// Count returns the number of particles of kind k.
func (s Stats) Count(k Kind) int {
	if k >= kindCount {
		return 0
	}
	return s.Kinds[k]
}

type deferred struct {
	at    uint64
	spawn func()
}

// Engine owns a particle set and advances it one frame per Tick.
// It is not safe for concurrent use; the host drives it from one goroutine.
// The zero value is an idle engine, initialized from a zero Config on first
// use.
type Engine struct {
	cfg       Config
	palette   []color.NRGBA
	particles []*Particle
	pointer   Pointer
	rng       *rand.Rand
	noise     *perlin.Perlin
	frame     uint64
	pending   []deferred
	revealed  bool

	bins map[cell][]int // Connection search grid, reused between frames
}

// New creates an engine and populates it from cfg.
func New(cfg Config) *Engine {
	e := &Engine{bins: make(map[cell][]int)}
	e.Initialize(cfg)
	return e
}

// Initialize discards the current state and populates cfg.Count ambient
// particles at random positions. A non-positive count leaves the engine idle.
func (e *Engine) Initialize(cfg Config) {
	cfg = cfg.normalize()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e.cfg = cfg
	e.palette = cfg.Palette
	if len(e.palette) == 0 {
		e.palette = Palette(cfg.Theme)
	}
	if e.bins == nil {
		e.bins = make(map[cell][]int)
	}
	e.rng = rand.New(rand.NewSource(seed))
	e.noise = perlin.NewPerlin(2, 2, 3, seed)
	e.frame = 0
	e.pending = nil
	e.revealed = false
	e.pointer = Pointer{}

	e.particles = make([]*Particle, 0, cfg.MaxParticles)
	for i := 0; i < cfg.Count; i++ {
		e.add(e.newAmbient())
	}
}

// Config returns the normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// Particles returns the live particle set. Callers must not retain or modify
// the slice across ticks.
func (e *Engine) Particles() []*Particle { return e.particles }

// Len returns the number of live particles.
func (e *Engine) Len() int { return len(e.particles) }

// Frame returns the number of ticks since Initialize.
func (e *Engine) Frame() uint64 { return e.frame }

// Pointer returns the last pointer sample.
func (e *Engine) Pointer() Pointer { return e.pointer }

// SetActive toggles ambient replenishment and pointer trails.
func (e *Engine) SetActive(active bool) { e.cfg.Active = active }

// Stats counts the live population by kind.
func (e *Engine) Stats() Stats {
	s := Stats{Frame: e.frame, Total: len(e.particles)}
	for _, p := range e.particles {
		if p.Kind < kindCount {
			s.Kinds[p.Kind]++
		}
	}
	return s
}

// Resize changes the field bounds. Bouncing fields pull particles back inside
// the new bounds immediately; wrapping fields let the next tick move them.
func (e *Engine) Resize(w, h float64) {
	if !(w >= 0) || !(h >= 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return
	}
	e.cfg.Width, e.cfg.Height = w, h
	if e.cfg.Boundary != Bounce {
		return
	}
	for _, p := range e.particles {
		p.X = clamp(p.X, 0, w)
		p.Y = clamp(p.Y, 0, h)
	}
}

// Anchors returns the on-screen positions of the four feature callouts.
func (e *Engine) Anchors() []Vec {
	w, h := e.cfg.Width, e.cfg.Height
	return []Vec{
		{w * 0.2, h * 0.3},
		{w * 0.8, h * 0.3},
		{w * 0.2, h * 0.7},
		{w * 0.8, h * 0.7},
	}
}

// SpawnBurst emits count burst particles from origin. Particle i leaves at
// angle i·2π/count with a speed sampled from speed. It returns how many
// particles were added; particles beyond MaxParticles are dropped.
func (e *Engine) SpawnBurst(origin Vec, count int, speed Range) int {
	e.ready()
	return e.burst(origin, count, speed, e.cfg.BurstLife, e.cfg.BurstSize)
}

// SpawnFeatureCluster schedules a spiral of feature particles at each
// position. Cluster i spawns i·FeatureStagger frames after the first, which
// spawns on the next tick.
func (e *Engine) SpawnFeatureCluster(positions []Vec) {
	e.ready()
	for i, pos := range positions {
		i, pos := i, pos // per-iteration copies for go < 1.22 loop semantics
		e.schedule(i*e.cfg.FeatureStagger, func() {
			e.spiral(pos, e.palette[i%len(e.palette)])
		})
	}
}

// Reveal runs the one-shot activation sequence: a large burst from the
// centre, a ring of feature particles shortly after, then feature clusters at
// the callout anchors in feature mode. It fires at most once per Initialize
// and reports whether it fired.
func (e *Engine) Reveal() bool {
	e.ready()
	if e.revealed {
		return false
	}
	e.revealed = true

	centre := Vec{e.cfg.Width / 2, e.cfg.Height / 2}
	e.burst(centre, revealBurstCount, Range{5, 25}, revealBurstLife, Range{3, 11})

	e.schedule(revealWaveDelay, func() {
		for i := 0; i < revealWaveCount; i++ {
			a := e.rng.Float64() * 2 * math.Pi
			r := 100 + e.rng.Float64()*200
			p := e.newParticle(Feature, centre.X+math.Cos(a)*r, centre.Y+math.Sin(a)*r)
			p.VX = (e.rng.Float64() - 0.5) * 2
			p.VY = (e.rng.Float64() - 0.5) * 2
			p.Size = Range{2, 6}.sample(e.rng)
			p.Life, p.MaxLife = e.cfg.AmbientLife, e.cfg.AmbientLife
			if !e.add(p) {
				return
			}
		}
	})
	if e.cfg.FeatureMode {
		e.schedule(revealFeatureDelay, func() {
			e.SpawnFeatureCluster(e.Anchors())
		})
	}
	return true
}

// PointerMove records the cursor and, when active with pointer trails
// enabled, occasionally drops a trail follower at the cursor.
func (e *Engine) PointerMove(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	e.ready()
	e.pointer = Pointer{X: x, Y: y, Valid: true}
	if !e.cfg.Active || !e.cfg.PointerTrail {
		return
	}
	if e.rng.Float64() >= trailSpawnChance {
		return
	}
	p := e.newParticle(TrailFollower, x, y)
	p.VX = (e.rng.Float64() - 0.5) * 3
	p.VY = (e.rng.Float64() - 0.5) * 3
	p.Size = Range{2, 8}.sample(e.rng)
	p.Life, p.MaxLife = trailFollowerLife, trailFollowerLife
	p.Angle = e.rng.Float64() * 2 * math.Pi
	e.add(p)
}

// PointerDown emits a small click burst at the cursor.
func (e *Engine) PointerDown(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	e.ready()
	e.pointer = Pointer{X: x, Y: y, Valid: true}
	e.SpawnBurst(Vec{x, y}, clickBurstCount, Range{2, 7})
}

// PointerLeave forgets the cursor so attraction stops.
func (e *Engine) PointerLeave() { e.pointer = Pointer{} }

// Tick advances every particle by one frame. Deferred spawns that are due
// run first, then each particle is integrated, aged, and removed once its
// life reaches zero. Finally an ambient replacement may be spawned.
func (e *Engine) Tick(ptr Pointer) {
	e.ready()
	e.frame++
	e.runDue()

	if ptr.Valid && (!finite(ptr.X) || !finite(ptr.Y)) {
		ptr.Valid = false
	}

	kept := e.particles[:0]
	for _, p := range e.particles {
		e.step(p, ptr)
		p.Life--
		if p.Life <= 0 {
			if e.cfg.Respawn && p.Kind == Ambient {
				e.seedAmbient(p)
				kept = append(kept, p)
			}
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(e.particles); i++ {
		e.particles[i] = nil
	}
	e.particles = kept

	e.replenish()
}

// ready initializes a zero Engine.
func (e *Engine) ready() {
	if e.rng == nil {
		e.Initialize(e.cfg)
	}
}

func (e *Engine) replenish() {
	if !e.cfg.Active || e.cfg.Count <= 0 {
		return
	}
	if len(e.particles) >= e.cfg.MaxParticles {
		return
	}
	if e.countKind(Ambient) >= e.cfg.Count {
		return
	}
	if e.rng.Float64() < e.cfg.SpawnChance {
		e.add(e.newAmbient())
	}
}

func (e *Engine) schedule(delay int, fn func()) {
	if delay < 1 {
		delay = 1
	}
	e.pending = append(e.pending, deferred{at: e.frame + uint64(delay), spawn: fn})
}

func (e *Engine) runDue() {
	if len(e.pending) == 0 {
		return
	}
	// Spawns may schedule more work, so take the queue first.
	queue := e.pending
	e.pending = nil
	var due []func()
	for _, d := range queue {
		if d.at <= e.frame {
			due = append(due, d.spawn)
		} else {
			e.pending = append(e.pending, d)
		}
	}
	for _, fn := range due {
		fn()
	}
}

func (e *Engine) burst(origin Vec, count int, speed Range, life int, size Range) int {
	if count <= 0 || !finite(origin.X) || !finite(origin.Y) {
		return 0
	}
	step := 2 * math.Pi / float64(count)
	added := 0
	for i := 0; i < count; i++ {
		a := float64(i) * step
		s := speed.sample(e.rng)
		p := e.newParticle(Burst, origin.X, origin.Y)
		p.VX = math.Cos(a) * s
		p.VY = math.Sin(a) * s
		p.Size = size.sample(e.rng)
		p.Life, p.MaxLife = life, life
		p.Angle = a
		if !e.add(p) {
			break
		}
		added++
	}
	return added
}

func (e *Engine) spiral(anchor Vec, c color.NRGBA) {
	for i := 0; i < spiralCount; i++ {
		a := float64(i) / spiralCount * 4 * math.Pi
		r := 20 + float64(i)*2
		p := e.newParticle(Feature, anchor.X+math.Cos(a)*r, anchor.Y+math.Sin(a)*r)
		p.VX = math.Cos(a)
		p.VY = math.Sin(a)
		p.Size = Range{2, 6}.sample(e.rng)
		p.Color = c
		p.Life, p.MaxLife = spiralLife, spiralLife
		p.Angle = a
		if !e.add(p) {
			return
		}
	}
}

func (e *Engine) newParticle(k Kind, x, y float64) *Particle {
	return &Particle{
		X:     x,
		Y:     y,
		Kind:  k,
		Color: e.palette[e.rng.Intn(len(e.palette))],
		Trail: NewTrail(e.cfg.TrailCap),
	}
}

func (e *Engine) newAmbient() *Particle {
	p := e.newParticle(Ambient, 0, 0)
	e.seedAmbient(p)
	return p
}

// seedAmbient places p at a random position with fresh velocity and life.
func (e *Engine) seedAmbient(p *Particle) {
	p.X = e.rng.Float64() * e.cfg.Width
	p.Y = e.rng.Float64() * e.cfg.Height
	p.VX = (e.rng.Float64() - 0.5) * 2 * e.cfg.AmbientSpeed
	p.VY = (e.rng.Float64() - 0.5) * 2 * e.cfg.AmbientSpeed
	p.Size = e.cfg.AmbientSize.sample(e.rng)
	p.Life, p.MaxLife = e.cfg.AmbientLife, e.cfg.AmbientLife
	p.Trail.Reset()
}

func (e *Engine) add(p *Particle) bool {
	if len(e.particles) >= e.cfg.MaxParticles {
		return false
	}
	e.particles = append(e.particles, p)
	return true
}

func (e *Engine) countKind(k Kind) int {
	n := 0
	for _, p := range e.particles {
		if p.Kind == k {
			n++
		}
	}
	return n
}
