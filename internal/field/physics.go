package field

import "math"

// step integrates one particle for one frame, in order: move, record trail,
// kind forces, pointer attraction, boundary.
func (e *Engine) step(p *Particle, ptr Pointer) {
	p.X += p.VX
	p.Y += p.VY
	p.Trail.Push(Vec{p.X, p.Y})

	e.applyKind(p)
	attract(p, ptr, e.cfg.AttractionRadius, e.cfg.AttractionForce)

	switch e.cfg.Boundary {
	case Bounce:
		bounce(p, e.cfg.Width, e.cfg.Height, e.cfg.Restitution)
	default:
		wrap(p, e.cfg.Width, e.cfg.Height, e.cfg.WrapMargin)
	}

	sanitize(p, e.cfg.Width, e.cfg.Height)
}

func (e *Engine) applyKind(p *Particle) {
	switch p.Kind {
	case TrailFollower:
		p.Angle = math.Mod(p.Angle+wanderTurn, 2*math.Pi)
		p.VX += math.Cos(p.Angle) * wanderPush
		p.VY += math.Sin(p.Angle) * wanderPush
	case Ambient:
		if e.cfg.Drift > 0 {
			n := e.noise.Noise2D(p.X*noiseScale, p.Y*noiseScale+float64(e.frame)*noiseTimeScale)
			a := n * 2 * math.Pi
			p.VX += math.Cos(a) * e.cfg.Drift
			p.VY += math.Sin(a) * e.cfg.Drift
		}
	}

	if p.Kind >= kindCount {
		return
	}
	ph := e.cfg.Physics[p.Kind]
	p.VY += ph.Gravity
	p.VX *= ph.Damping
	p.VY *= ph.Damping
}

// attract pulls p toward the pointer when it is inside radius. The pull
// grows linearly from zero at the radius to force at the pointer. A particle
// exactly on the pointer has no direction and is left alone.
func attract(p *Particle, ptr Pointer, radius, force float64) {
	if !ptr.Valid || radius <= 0 {
		return
	}
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	d := math.Hypot(dx, dy)
	if d == 0 || d >= radius || math.IsNaN(d) {
		return
	}
	f := (radius - d) / radius * force
	p.VX += dx / d * f
	p.VY += dy / d * f
}

// bounce clamps p inside [0,w]x[0,h]. A velocity component pointing out of
// the wall it touched is reversed and scaled by restitution; the other
// component is untouched.
func bounce(p *Particle, w, h, restitution float64) {
	if p.X < 0 {
		p.X = 0
		if p.VX < 0 {
			p.VX = -p.VX * restitution
		}
	} else if p.X > w {
		p.X = w
		if p.VX > 0 {
			p.VX = -p.VX * restitution
		}
	}
	if p.Y < 0 {
		p.Y = 0
		if p.VY < 0 {
			p.VY = -p.VY * restitution
		}
	} else if p.Y > h {
		p.Y = h
		if p.VY > 0 {
			p.VY = -p.VY * restitution
		}
	}
}

// wrap moves p to the opposite side once it is more than margin outside the
// bounds. The trail is restarted so no streak is drawn across the field.
func wrap(p *Particle, w, h, margin float64) {
	moved := false
	if p.X < -margin {
		p.X = w + margin
		moved = true
	} else if p.X > w+margin {
		p.X = -margin
		moved = true
	}
	if p.Y < -margin {
		p.Y = h + margin
		moved = true
	} else if p.Y > h+margin {
		p.Y = -margin
		moved = true
	}
	if moved {
		p.Trail.Reset()
		p.Trail.Push(Vec{p.X, p.Y})
	}
}

// sanitize keeps state finite. A non-finite velocity is zeroed; a
// non-finite position is moved to the centre of the field.
func sanitize(p *Particle, w, h float64) {
	if !finite(p.VX) || !finite(p.VY) {
		p.VX, p.VY = 0, 0
	}
	if !finite(p.X) || !finite(p.Y) {
		p.X, p.Y = w/2, h/2
		p.Trail.Reset()
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
