package engine

import "math/rand"

// Integrator advances every particle of a store by one frame. The rule for
// each mode is fixed per scene; the mode only selects between them.
type Integrator struct {
	Neutral MotionRule
	Active  MotionRule

	rand *rand.Rand
}

// NewIntegrator creates an integrator with one rule per mode
func NewIntegrator(neutral, active MotionRule, rng *rand.Rand) *Integrator {
	return &Integrator{
		Neutral: neutral,
		Active:  active,
		rand:    rng,
	}
}

// Rule returns the motion rule for a mode
func (in *Integrator) Rule(mode Mode) MotionRule {
	if mode == ModeActive {
		return in.Active
	}
	return in.Neutral
}

// Step advances all particles. Particles held by a tween are left alone.
// Nothing happens while the surface has no area.
func (in *Integrator) Step(store *Store, mode Mode) {
	b := store.Bounds()
	if b.Empty() {
		return
	}

	rule := in.Rule(mode)
	if rule == nil {
		return
	}

	env := Env{Bounds: b, Store: store, Rand: in.rand}
	for i := range store.Particles {
		p := &store.Particles[i]
		if p.Held {
			continue
		}
		rule.Advance(p, &env)
	}
}
