package field

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
)

// Engine defaults
const (
	DefaultMaxParticles       = 200
	DefaultTrailCap           = 15
	DefaultAttractionRadius   = 150.0
	DefaultAttractionForce    = 0.3
	DefaultConnectionDistance = 120.0
	DefaultRestitution        = 0.8
	DefaultWrapMargin         = 50.0
	DefaultSpawnChance        = 0.05
	DefaultFeatureStagger     = 18 // frames between feature clusters (~300ms at 60 TPS)
	DefaultAmbientLife        = 120
	DefaultBurstLife          = 60

	trailFollowerLife   = 40
	trailSpawnChance    = 0.2
	clickBurstCount     = 10
	revealBurstCount    = 100
	revealBurstLife     = 150
	revealWaveCount     = 50
	revealWaveDelay     = 30 // frames
	revealFeatureDelay  = 60 // frames
	spiralCount         = 30
	spiralLife          = 300
	wanderTurn          = 0.02
	wanderPush          = 0.1
	noiseScale          = 0.005
	noiseTimeScale      = 0.01
	connectionAlphaPeak = 0.3
)

// Boundary is the edge policy of an engine instance.
type Boundary uint8

const (
	// Wrap moves a particle that leaves by more than the margin to the
	// opposite edge, keeping its velocity.
	Wrap Boundary = iota
	// Bounce clamps a particle to the edge and reflects its outward velocity
	// scaled by the restitution.
	Bounce
)

func (b Boundary) String() string {
	if b == Bounce {
		return "bounce"
	}
	return "wrap"
}

// ParseBoundary accepts "wrap" or "bounce".
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap", "":
		return Wrap, nil
	case "bounce":
		return Bounce, nil
	default:
		return Wrap, fmt.Errorf("unknown boundary policy %q", s)
	}
}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// KindPhysics is the per-frame force applied to one particle kind.
type KindPhysics struct {
	Gravity float64 // Added to VY every frame
	Damping float64 // Velocity multiplier every frame
}

// Config parameterizes one engine instance.
type Config struct {
	Count   int           // Target ambient population
	Theme   Theme         // Palette key
	Palette []color.NRGBA // Overrides Theme when non-empty

	Width, Height float64

	Active       bool // Keep replenishing ambient particles and spawn pointer trails
	Burst        bool // Fire the reveal sequence once when mounted
	FeatureMode  bool // Reveal ends with feature clusters
	Connections  bool // Draw proximity lines
	PointerTrail bool // Pointer movement spawns trail followers
	Respawn      bool // Expired ambient particles are re-seeded instead of removed

	Boundary    Boundary
	Restitution float64
	WrapMargin  float64

	TrailCap           int
	AttractionRadius   float64 // Zero disables pointer attraction
	AttractionForce    float64
	ConnectionDistance float64
	MaxParticles       int
	SpawnChance        float64 // Per-frame chance of an ambient replacement
	FeatureStagger     int     // Frames between feature clusters

	AmbientSpeed float64 // Half-range of initial ambient velocity
	AmbientSize  Range
	AmbientLife  int
	BurstSize    Range
	BurstLife    int
	Drift        float64 // Strength of the noise drift on ambient particles

	Physics [kindCount]KindPhysics

	Seed int64 // Zero picks a time-based seed
}

// DefaultConfig returns the landing-page field: wrap edges, pointer trails,
// gravity on bursts.
func DefaultConfig() Config {
	c := Config{
		Count:              150,
		Theme:              ThemeLanding,
		Width:              800,
		Height:             600,
		Active:             true,
		PointerTrail:       true,
		Boundary:           Wrap,
		Restitution:        DefaultRestitution,
		WrapMargin:         DefaultWrapMargin,
		TrailCap:           DefaultTrailCap,
		AttractionRadius:   DefaultAttractionRadius,
		AttractionForce:    DefaultAttractionForce,
		ConnectionDistance: DefaultConnectionDistance,
		MaxParticles:       DefaultMaxParticles,
		SpawnChance:        DefaultSpawnChance,
		FeatureStagger:     DefaultFeatureStagger,
		AmbientSpeed:       1,
		AmbientSize:        Range{2, 6},
		AmbientLife:        DefaultAmbientLife,
		BurstSize:          Range{2, 10},
		BurstLife:          DefaultBurstLife,
		Drift:              0.02,
	}
	c.Physics[Ambient] = KindPhysics{Damping: 0.995}
	c.Physics[Burst] = KindPhysics{Gravity: 0.15, Damping: 0.98}
	c.Physics[Feature] = KindPhysics{Damping: 0.95}
	c.Physics[TrailFollower] = KindPhysics{Damping: 0.99}
	return c
}

// PageConfig is the foreground field used on a page: a denser population
// when active, connection lines and feature clusters in feature mode.
func PageConfig(theme Theme, active, burst, featureMode bool) Config {
	c := DefaultConfig()
	c.Theme = theme
	c.Active = active
	c.Burst = burst
	c.FeatureMode = featureMode
	c.Connections = featureMode
	if !active {
		c.Count = 80
	}
	return c
}

// ShowcaseConfig is the bouncing variant: walls with restitution, a tighter
// attraction radius and a longer connection reach.
func ShowcaseConfig(active, burst, featureMode bool) Config {
	c := PageConfig(ThemeNeon, active, burst, featureMode)
	c.Count = 100
	if active {
		c.Count = 200
	}
	c.Boundary = Bounce
	c.PointerTrail = false
	c.TrailCap = 10
	c.AttractionRadius = 100
	c.AttractionForce = 0.5
	c.ConnectionDistance = 150
	c.SpawnChance = 1
	c.AmbientLife = 100
	c.Physics[Burst] = KindPhysics{Gravity: 0.1, Damping: 0.99}
	return c
}

// BackgroundConfig is the slow ambient backdrop: a constant population that
// never fades out, perfect-bounce walls and proximity lines.
func BackgroundConfig(theme Theme, count int) Config {
	c := DefaultConfig()
	c.Theme = theme
	c.Count = count
	c.Active = false
	c.PointerTrail = false
	c.Connections = true
	c.Respawn = true
	c.Boundary = Bounce
	c.Restitution = 1
	c.TrailCap = 0
	c.AttractionRadius = 0
	c.ConnectionDistance = 150
	c.AmbientSpeed = 0.25
	c.AmbientSize = Range{1, 4}
	c.AmbientLife = 600
	c.Drift = 0.005
	c.Physics[Ambient] = KindPhysics{Damping: 1}
	return c
}

// normalize clamps out-of-range settings instead of failing.
func (c Config) normalize() Config {
	if c.Width < 0 {
		c.Width = 0
	}
	if c.Height < 0 {
		c.Height = 0
	}
	if c.MaxParticles <= 0 {
		c.MaxParticles = DefaultMaxParticles
	}
	if c.Count < 0 {
		c.Count = 0
	}
	if c.Count > c.MaxParticles {
		c.Count = c.MaxParticles
	}
	if c.TrailCap < 0 {
		c.TrailCap = 0
	}
	if c.Restitution < 0 {
		c.Restitution = 0
	}
	if c.WrapMargin < 0 {
		c.WrapMargin = 0
	}
	if c.AttractionRadius < 0 {
		c.AttractionRadius = 0
	}
	if c.ConnectionDistance < 0 {
		c.ConnectionDistance = 0
	}
	if c.FeatureStagger < 0 {
		c.FeatureStagger = 0
	}
	if c.AmbientLife <= 0 {
		c.AmbientLife = DefaultAmbientLife
	}
	if c.BurstLife <= 0 {
		c.BurstLife = DefaultBurstLife
	}
	for k := range c.Physics {
		if c.Physics[k].Damping == 0 {
			c.Physics[k].Damping = 1
		}
	}
	return c
}
