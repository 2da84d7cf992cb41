package engine

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// TweenKey identifies the property a tween owns. A new tween with the same key
// replaces the running one.
type TweenKey struct {
	Target any
	Index  int
	Prop   string
}

// Tweened property names used in keys
const (
	PropColor    = "color"
	PropVelocity = "velocity"
	PropPosition = "position"
	PropValue    = "value"
)

// Tween interpolates one property over time
type Tween struct {
	key      TweenKey
	delay    float64
	duration float64
	elapsed  float64
	ease     Ease
	started  bool

	begin    func() bool
	apply    func(k float64) bool
	finish   func()
	complete func()
}

// TweenOption customises a tween
type TweenOption func(*Tween)

// Delay postpones the start of a tween by s seconds
func Delay(s float64) TweenOption {
	return func(t *Tween) { t.delay = s }
}

// OnComplete runs fn after the tween reaches its end value
func OnComplete(fn func()) TweenOption {
	return func(t *Tween) { t.complete = fn }
}

// Animator runs keyed tweens on the scene clock
type Animator struct {
	tweens []*Tween
}

// NewAnimator creates an empty animator
func NewAnimator() *Animator {
	return &Animator{tweens: make([]*Tween, 0, 32)}
}

// Active returns the number of running or delayed tweens
func (a *Animator) Active() int {
	return len(a.tweens)
}

// Running reports whether a tween with the key is scheduled
func (a *Animator) Running(key TweenKey) bool {
	for _, t := range a.tweens {
		if t.key == key {
			return true
		}
	}
	return false
}

// Clear drops every tween without running its completion
func (a *Animator) Clear() {
	for _, t := range a.tweens {
		if t.finish != nil {
			t.finish()
		}
	}
	a.tweens = a.tweens[:0]
}

// Cancel drops the tween with the given key. It returns false if none was running.
func (a *Animator) Cancel(key TweenKey) bool {
	for i, t := range a.tweens {
		if t.key == key {
			if t.finish != nil {
				t.finish()
			}
			a.tweens = append(a.tweens[:i], a.tweens[i+1:]...)
			return true
		}
	}
	return false
}

// Kill drops all tweens on a target
func (a *Animator) Kill(target any) {
	kept := a.tweens[:0]
	for _, t := range a.tweens {
		if t.key.Target == target {
			if t.finish != nil {
				t.finish()
			}
			continue
		}
		kept = append(kept, t)
	}
	a.tweens = kept
}

func (a *Animator) add(t *Tween, opts []TweenOption) {
	for _, opt := range opts {
		opt(t)
	}
	if t.ease == nil {
		t.ease = Power2Out
	}
	kept := a.tweens[:0]
	for _, old := range a.tweens {
		if old.key == t.key {
			continue
		}
		kept = append(kept, old)
	}
	a.tweens = append(kept, t)
}

// Update advances every tween by dt seconds
func (a *Animator) Update(dt float64) {
	var completed []func()

	kept := a.tweens[:0]
	for _, t := range a.tweens {
		if t.delay > 0 {
			t.delay -= dt
			if t.delay > 0 {
				kept = append(kept, t)
				continue
			}
			// carry the overshoot into the tween
			dt := -t.delay
			t.delay = 0
			if !a.step(t, dt, &completed) {
				kept = append(kept, t)
			}
			continue
		}
		if !a.step(t, dt, &completed) {
			kept = append(kept, t)
		}
	}
	// zero the tail so dropped tweens can be collected
	for i := len(kept); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = kept

	for _, fn := range completed {
		fn()
	}
}

// step advances a started tween, returning true once it is finished or its target vanished
func (a *Animator) step(t *Tween, dt float64, completed *[]func()) bool {
	if !t.started {
		t.started = true
		if !t.begin() {
			return true
		}
	}
	t.elapsed += dt

	k := 1.0
	if t.duration > 0 && t.elapsed < t.duration {
		k = t.ease(t.elapsed / t.duration)
	}
	if !t.apply(k) {
		return true
	}
	if t.duration > 0 && t.elapsed < t.duration {
		return false
	}

	if t.finish != nil {
		t.finish()
	}
	if t.complete != nil {
		*completed = append(*completed, t.complete)
	}
	return true
}

// particle resolves a store index, nil when it no longer exists
func particle(s *Store, i int) *Particle {
	if i < 0 || i >= len(s.Particles) {
		return nil
	}
	return &s.Particles[i]
}

// Color blends particle i's colour to c
func (a *Animator) Color(s *Store, i int, c colorful.Color, duration float64, ease Ease, opts ...TweenOption) {
	var from colorful.Color
	a.add(&Tween{
		key:      TweenKey{Target: s, Index: i, Prop: PropColor},
		duration: duration,
		ease:     ease,
		begin: func() bool {
			p := particle(s, i)
			if p == nil {
				return false
			}
			from = p.Color
			return true
		},
		apply: func(k float64) bool {
			p := particle(s, i)
			if p == nil {
				return false
			}
			p.Color = from.BlendRgb(c, k).Clamped()
			return true
		},
	}, opts)
}

// Velocity eases particle i's velocity to v
func (a *Animator) Velocity(s *Store, i int, v Vec2, duration float64, ease Ease, opts ...TweenOption) {
	var from Vec2
	a.add(&Tween{
		key:      TweenKey{Target: s, Index: i, Prop: PropVelocity},
		duration: duration,
		ease:     ease,
		begin: func() bool {
			p := particle(s, i)
			if p == nil {
				return false
			}
			from = p.Vel
			return true
		},
		apply: func(k float64) bool {
			p := particle(s, i)
			if p == nil {
				return false
			}
			p.Vel = from.Lerp(v, k)
			return true
		},
	}, opts)
}

// Position moves particle i to pos. The particle is held (skipped by the
// integrator) while the tween runs; with keepHeld it stays held afterwards.
func (a *Animator) Position(s *Store, i int, pos Vec2, duration float64, ease Ease, keepHeld bool, opts ...TweenOption) {
	var from Vec2
	a.add(&Tween{
		key:      TweenKey{Target: s, Index: i, Prop: PropPosition},
		duration: duration,
		ease:     ease,
		begin: func() bool {
			p := particle(s, i)
			if p == nil {
				return false
			}
			from = p.Pos
			p.Held = true
			return true
		},
		apply: func(k float64) bool {
			p := particle(s, i)
			if p == nil {
				return false
			}
			p.Pos = from.Lerp(pos, k)
			return true
		},
		finish: func() {
			if p := particle(s, i); p != nil && !keepHeld {
				p.Held = false
			}
		},
	}, opts)
}

// Float eases *ptr to v
func (a *Animator) Float(ptr *float64, v, duration float64, ease Ease, opts ...TweenOption) {
	var from float64
	a.add(&Tween{
		key:      TweenKey{Target: ptr, Prop: PropValue},
		duration: duration,
		ease:     ease,
		begin: func() bool {
			from = *ptr
			return true
		},
		apply: func(k float64) bool {
			*ptr = from + (v-from)*k
			return true
		},
	}, opts)
}
