package engine

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Kind identifies how a particle is drawn
type Kind int

const (
	KindCircle Kind = iota
	KindTriangle
	KindRoundedRect
	KindSprite
)

// String returns the kind name used in logs and config
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindTriangle:
		return "triangle"
	case KindRoundedRect:
		return "roundedRect"
	case KindSprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// Mode is the behavioural state of a scene's particle set
type Mode int

const (
	// ModeNeutral is the grey, connected, idle/orbiting state
	ModeNeutral Mode = iota
	// ModeActive is the coloured, dispersed, drifting state
	ModeActive
)

// String returns the mode name
func (m Mode) String() string {
	if m == ModeActive {
		return "active"
	}
	return "neutral"
}

// Particle is a single decorative shape or sprite
type Particle struct {
	// ID is the creation index, used for layout tables and per-particle variation
	ID int

	// Position and velocity in pixels (velocity is per frame)
	Pos Vec2
	Vel Vec2

	// Size is the shape's bounding extent in pixels
	Size float64

	// Kind selects the draw routine
	Kind Kind

	// Color is the colour drawn this frame; Original is the particle's palette tone
	Color    colorful.Color
	Original colorful.Color

	// Rotation in radians (sprites face their direction of travel)
	Rotation float64

	// Floating-anchor motion
	Anchor      Vec2
	FloatRadius float64
	FloatSpeed  float64
	FloatAngle  float64

	// Stopped marks a particle resting against a stack wall
	Stopped bool

	// Held marks a particle whose position is owned by a running tween
	Held bool
}

// Speed returns the velocity magnitude
func (p *Particle) Speed() float64 {
	return p.Vel.Len()
}

// OrbitPoint returns where the floating motion places the particle for its current phase
func (p *Particle) OrbitPoint() Vec2 {
	return p.Anchor.Add(Polar(p.FloatAngle, p.FloatRadius))
}

// Face points the particle along its velocity
func (p *Particle) Face() {
	p.Rotation = math.Atan2(p.Vel.Y, p.Vel.X)
}
