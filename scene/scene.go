// Package scene holds the page choreography: which particle layers exist, which
// scroll anchors and timers drive them and how they react.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"swarmfield/engine"
)

// Scene is one animated layer of the page
type Scene interface {
	Name() string

	// Section is the page section the layer scrolls with; empty means the
	// layer is fixed to the viewport
	Section() string

	// Mount registers scroll anchors and starts timers
	Mount(host *engine.ScrollHost) error

	// Resize is called whenever the drawing surface changes size
	Resize(b engine.Bounds) error

	// Update advances the scene by one frame of dt seconds
	Update(dt float64)

	// Draw paints the layer, returning false if nothing was drawn
	Draw(s engine.Surface) bool

	// Close cancels timers, tweens and anchors. Callbacks that are already
	// queued become no-ops.
	Close()
}

// base carries the per-scene clock, tweens and anchors
type base struct {
	name    string
	logger  *zap.Logger
	sched   *engine.Scheduler
	anim    *engine.Animator
	host    *engine.ScrollHost
	remove  []func()
	closed  bool
	mounted bool
}

func newBase(name string, logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named(name)
	return base{
		name:   name,
		logger: logger,
		sched:  engine.NewScheduler(logger),
		anim:   engine.NewAnimator(),
	}
}

func (b *base) Name() string {
	return b.name
}

// Clock returns the scene time in seconds
func (b *base) Clock() float64 {
	return b.sched.Now()
}

// attach remembers the host; a scene mounts once
func (b *base) attach(host *engine.ScrollHost) error {
	if b.mounted {
		return fmt.Errorf("scene %s already mounted", b.name)
	}
	b.mounted = true
	b.host = host
	return nil
}

// guard drops callbacks that fire after Close
func (b *base) guard(fn func()) func() {
	if fn == nil {
		return nil
	}
	return func() {
		if b.closed {
			return
		}
		fn()
	}
}

// register adds a scroll anchor whose callbacks stop once the scene closes
func (b *base) register(a engine.Anchor) error {
	a.OnEnter = b.guard(a.OnEnter)
	a.OnLeave = b.guard(a.OnLeave)
	a.OnEnterBack = b.guard(a.OnEnterBack)
	a.OnLeaveBack = b.guard(a.OnLeaveBack)
	if fn := a.OnProgress; fn != nil {
		a.OnProgress = func(p float64) {
			if !b.closed {
				fn(p)
			}
		}
	}

	remove, err := b.host.Register(a)
	if err != nil {
		return err
	}
	b.remove = append(b.remove, remove)
	return nil
}

// after schedules a guarded step on the scene clock
func (b *base) after(delay float64, name string, fn func()) engine.Handle {
	return b.sched.After(delay, name, b.guard(fn))
}

// tick advances the scene clock and tweens
func (b *base) tick(dt float64) {
	if b.closed {
		return
	}
	b.sched.Advance(dt)
	b.anim.Update(dt)
}

func (b *base) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.sched.Clear()
	b.anim.Clear()
	for _, remove := range b.remove {
		remove()
	}
	b.remove = nil
	b.logger.Debug("scene closed")
}
