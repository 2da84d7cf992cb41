package engine

import "math/rand"

// Env is the per-step context shared by motion rules
type Env struct {
	Bounds Bounds
	Store  *Store
	Rand   *rand.Rand
}

// MotionRule advances a single particle by one frame
type MotionRule interface {
	Advance(p *Particle, env *Env)
}

// Boundary keeps a particle inside (or cycling through) the surface
type Boundary interface {
	Apply(p *Particle, env *Env)
}

// Drift is free linear motion followed by a boundary policy
type Drift struct {
	Boundary Boundary

	// Face turns the particle toward its direction of travel
	Face bool
}

// Advance applies one Euler step
func (d Drift) Advance(p *Particle, env *Env) {
	p.Pos = p.Pos.Add(p.Vel)
	if d.Face {
		p.Face()
	}
	if d.Boundary != nil {
		d.Boundary.Apply(p, env)
	}
}

// Orbit floats a particle around its anchor with an accumulating phase
type Orbit struct{}

// Advance moves the phase forward and places the particle on its orbit
func (Orbit) Advance(p *Particle, env *Env) {
	p.FloatAngle += p.FloatSpeed
	p.Pos = p.OrbitPoint()
}

// Wrap moves a particle that has fully left one edge to just past the opposite edge
type Wrap struct{}

// Apply wraps both axes. A particle counts as gone once its centre is more than
// half its size past the edge.
func (Wrap) Apply(p *Particle, env *Env) {
	b := env.Bounds
	half := p.Size / 2

	if p.Pos.X > b.W+half {
		p.Pos.X = -half
	} else if p.Pos.X < -half {
		p.Pos.X = b.W + half
	}
	if p.Pos.Y > b.H+half {
		p.Pos.Y = -half
	} else if p.Pos.Y < -half {
		p.Pos.Y = b.H + half
	}
}

// FallWrap wraps horizontally but only recycles vertically from bottom to top,
// giving the shapes a downward flow
type FallWrap struct{}

// Apply wraps x, recycles y bottom-to-top at a fresh random x, and caps upward escape
func (FallWrap) Apply(p *Particle, env *Env) {
	b := env.Bounds
	s := p.Size

	if p.Pos.X > b.W+s {
		p.Pos.X = -s
	} else if p.Pos.X < -s {
		p.Pos.X = b.W + s
	}
	if p.Pos.Y > b.H+s {
		p.Pos.Y = -s
		p.Pos.X = env.Rand.Float64() * b.W
	}
	if p.Pos.Y < -s*2 {
		p.Pos.Y = -s
	}
}

// Bounce reflects the velocity component that crossed an edge
type Bounce struct {
	// X and Y select the axes that bounce
	X, Y bool

	// Damping is the fraction of speed lost per bounce (0 = elastic)
	Damping float64
}

// Apply reflects and clamps
func (bn Bounce) Apply(p *Particle, env *Env) {
	b := env.Bounds
	keep := 1 - bn.Damping

	if bn.X && (p.Pos.X < 0 || p.Pos.X > b.W) {
		p.Vel.X = -p.Vel.X * keep
		p.Pos.X = clamp(p.Pos.X, 0, b.W)
	}
	if bn.Y && (p.Pos.Y < 0 || p.Pos.Y > b.H) {
		p.Vel.Y = -p.Vel.Y * keep
		p.Pos.Y = clamp(p.Pos.Y, 0, b.H)
	}
}

// Stack drives particles toward a wall where they stop and pile up in slots
type Stack struct {
	// Wall is the x coordinate where particles stop
	Wall float64

	// PerLayer slots per row, Spacing between slots, LayerHeight between rows
	PerLayer    int
	Spacing     float64
	LayerHeight float64

	// Baseline is the fraction of the surface height the first row sits above
	Baseline float64

	// Damping multiplies vertical speed of resting particles each frame
	Damping float64
}

// DefaultStack is the ant pile against the left wall
var DefaultStack = Stack{
	Wall:        60,
	PerLayer:    8,
	Spacing:     15,
	LayerHeight: 30,
	Baseline:    0.8,
	Damping:     0.9,
}

// Advance moves, faces, stops at the wall, bounces top/bottom and clamps
func (s Stack) Advance(p *Particle, env *Env) {
	b := env.Bounds

	p.Pos = p.Pos.Add(p.Vel)
	p.Face()

	if p.Stopped {
		p.Vel.Y *= s.Damping
	} else if p.Pos.X <= s.Wall {
		slot := env.Store.Stacked
		env.Store.Stacked++

		p.Stopped = true
		p.Vel.X = 0
		p.Vel.Y *= s.Damping

		layer := slot/s.PerLayer + 1
		p.Pos.X = s.Wall + float64(slot%s.PerLayer)*s.Spacing
		p.Pos.Y = b.H*s.Baseline - float64(layer)*s.LayerHeight
	}

	if p.Pos.Y < 0 || p.Pos.Y > b.H {
		p.Vel.Y = -p.Vel.Y
	}
	p.Pos.X = clamp(p.Pos.X, 0, b.W)
	p.Pos.Y = clamp(p.Pos.Y, 0, b.H)
}
