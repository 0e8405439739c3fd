package field

import "image/color"

// Vec is a position or velocity in surface pixel space.
type Vec struct {
	X, Y float64
}

// Kind selects the physics a particle follows.
type Kind uint8

const (
	Ambient Kind = iota
	Burst
	Feature
	TrailFollower

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Burst:
		return "burst"
	case Feature:
		return "feature"
	case TrailFollower:
		return "trail"
	default:
		return "unknown"
	}
}

// Particle is a single point in the field.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity, pixels per frame
	Size    float64 // Radius
	Color   color.NRGBA
	Life    int // Frames left
	MaxLife int
	Kind    Kind
	Trail   Trail
	Angle   float64 // Wander heading, used by trail followers
}

// Alpha is the remaining life fraction used to fade the particle.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	a := float64(p.Life) / float64(p.MaxLife)
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Trail is a fixed-capacity FIFO of recent positions. When full, pushing
// evicts the oldest sample.
type Trail struct {
	buf   []Vec
	start int
	n     int
}

// NewTrail returns an empty trail holding at most capacity samples.
func NewTrail(capacity int) Trail {
	if capacity < 0 {
		capacity = 0
	}
	return Trail{buf: make([]Vec, capacity)}
}

// Push appends p, dropping the oldest sample when the trail is full.
func (t *Trail) Push(p Vec) {
	if len(t.buf) == 0 {
		return
	}
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

// Len returns the number of stored samples.
func (t *Trail) Len() int { return t.n }

// Cap returns the maximum number of samples.
func (t *Trail) Cap() int { return len(t.buf) }

// At returns sample i, where 0 is the oldest.
func (t *Trail) At(i int) Vec {
	return t.buf[(t.start+i)%len(t.buf)]
}

// Reset empties the trail without releasing its storage.
func (t *Trail) Reset() {
	t.start, t.n = 0, 0
}

// Each calls fn for every sample from oldest to newest.
func (t *Trail) Each(fn func(Vec)) {
	for i := 0; i < t.n; i++ {
		fn(t.At(i))
	}
}
