package field

import (
	"math"

	"github.com/olivierh59500/particle-field/internal/canvas"
)

// cell is a connection-grid bin coordinate.
type cell struct{ x, y int }

// ConnectionAlpha returns the opacity of a connection line between two
// particles d apart, and whether a line is drawn at all. Opacity falls
// linearly from its peak at d=0 to zero at maxDist.
func ConnectionAlpha(d, maxDist float64) (float64, bool) {
	if maxDist <= 0 || !(d >= 0) || d >= maxDist {
		return 0, false
	}
	return (maxDist - d) / maxDist * connectionAlphaPeak, true
}

// Render clears s and draws the current frame: connection lines first, then
// each particle's trail and disc. A nil surface is ignored.
func (e *Engine) Render(s canvas.Surface) {
	if s == nil {
		return
	}
	s.Clear()
	if e.cfg.Connections {
		e.drawConnections(s)
	}
	for _, p := range e.particles {
		e.drawParticle(s, p)
	}
}

func (e *Engine) drawParticle(s canvas.Surface, p *Particle) {
	alpha := p.Alpha()
	if alpha <= 0 {
		return
	}

	if p.Trail.Len() > 1 {
		pts := make([]canvas.Point, 0, p.Trail.Len())
		p.Trail.Each(func(v Vec) {
			pts = append(pts, canvas.Point{X: v.X, Y: v.Y})
		})
		s.Polyline(pts, p.Size*0.3, canvas.Fade(p.Color, alpha*0.6))
	}

	canvas.Glow(s, p.X, p.Y, p.Size, p.Color, alpha)

	if p.Kind == Burst || p.Kind == Feature {
		s.FillCircle(p.X, p.Y, p.Size*0.3, canvas.Fade(p.Color, alpha))
	}
}

// buildBins assigns particle indices to grid cells the size of the
// connection distance, so only neighbouring cells need pairwise checks.
// Afterwards the grid holds exactly the occupied cells.
func (e *Engine) buildBins(size float64) {
	if e.bins == nil {
		e.bins = make(map[cell][]int)
	}
	for k, v := range e.bins {
		e.bins[k] = v[:0]
	}
	for i, p := range e.particles {
		c := cell{int(math.Floor(p.X / size)), int(math.Floor(p.Y / size))}
		e.bins[c] = append(e.bins[c], i)
	}
	for k, v := range e.bins {
		if len(v) == 0 {
			delete(e.bins, k)
		}
	}
}

func (e *Engine) drawConnections(s canvas.Surface) {
	maxDist := e.cfg.ConnectionDistance
	if maxDist <= 0 || len(e.particles) < 2 {
		return
	}
	e.buildBins(maxDist)

	for i, p1 := range e.particles {
		c := cell{int(math.Floor(p1.X / maxDist)), int(math.Floor(p1.Y / maxDist))}
		// Check this bin and 8 neighbors
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range e.bins[cell{c.x + dx, c.y + dy}] {
					if j <= i {
						continue // each pair once
					}
					p2 := e.particles[j]
					d := math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
					alpha, ok := ConnectionAlpha(d, maxDist)
					if !ok {
						continue
					}
					col := canvas.Fade(canvas.Blend(p1.Color, p2.Color, 0.5), alpha)
					s.Line(p1.X, p1.Y, p2.X, p2.Y, 1, col)
				}
			}
		}
	}
}
