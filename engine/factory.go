package engine

import (
	"math"
	"math/rand"
)

// Factory produces the initial state of a particle for a given index
type Factory interface {
	Create(index int, b Bounds) (Particle, error)
}

// NetworkFactory places particles on a fixed network layout
type NetworkFactory struct {
	Layout *NetworkLayout
}

// NewNetworkFactory creates a factory for the given layout
func NewNetworkFactory(layout *NetworkLayout) *NetworkFactory {
	return &NetworkFactory{Layout: layout}
}

// Create places particle index on its layout node, grey and stationary
func (f *NetworkFactory) Create(index int, b Bounds) (Particle, error) {
	if b.Empty() {
		return Particle{}, ErrEmptySurface
	}

	node := f.Layout.Node(index)
	anchor := Vec2{node.X * b.W, node.Y * b.H}
	radius, speed, angle := f.Layout.Float(index)

	p := Particle{
		ID:          index,
		Size:        f.Layout.Size(index),
		Kind:        f.Layout.Kind(index),
		Color:       f.Layout.Palette.Neutral,
		Original:    f.Layout.Palette.Tone(index),
		Anchor:      anchor,
		FloatRadius: radius,
		FloatSpeed:  speed,
		FloatAngle:  angle,
	}
	// Start on the orbit so the first floating step is continuous
	p.Pos = p.OrbitPoint()
	return p, nil
}

// AntFactory spawns sprite particles crawling in from the right side
type AntFactory struct {
	Rand *rand.Rand
}

// NewAntFactory creates an ant factory with its own random source
func NewAntFactory(rng *rand.Rand) *AntFactory {
	return &AntFactory{Rand: rng}
}

// Create spawns an ant in the right part of the surface heading left
func (f *AntFactory) Create(index int, b Bounds) (Particle, error) {
	if b.Empty() {
		return Particle{}, ErrEmptySurface
	}
	r := f.Rand

	return Particle{
		ID: index,
		Pos: Vec2{
			X: b.W*0.7 + r.Float64()*b.W*0.25,
			Y: b.H*0.2 + r.Float64()*b.H*0.6,
		},
		Vel: Vec2{
			X: -1.5 - r.Float64()*0.8,
			Y: (r.Float64() - 0.5) * 0.8,
		},
		Size:     40 + r.Float64()*20,
		Kind:     KindSprite,
		Rotation: r.Float64() * math.Pi * 2,
	}, nil
}
