package scene

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"swarmfield/engine"
)

// AntSprite is the sprite name the ant layer draws with
const AntSprite = "ant"

// Ants is the swarm section: ants crawl in from the right and pile up against
// the left wall, more of them arriving every second once the section is reached
type Ants struct {
	base

	cfg        AntConfig
	store      *engine.Store
	integrator *engine.Integrator
	renderer   *engine.Renderer
	growth     []engine.Handle
}

// NewAnts creates the ant layer
func NewAnts(cfg AntConfig, rng *rand.Rand, logger *zap.Logger) *Ants {
	a := &Ants{
		base:     newBase(NameAnts, logger),
		cfg:      cfg,
		store:    engine.NewStore(engine.NewAntFactory(rng), rng),
		renderer: engine.NewRenderer(),
	}
	// ants stack whatever the mode
	a.integrator = engine.NewIntegrator(engine.DefaultStack, engine.DefaultStack, rng)
	return a
}

func (a *Ants) Section() string { return AntSection }

// Store exposes the ants
func (a *Ants) Store() *engine.Store { return a.store }

// Count returns the number of ants including those waiting for a sized surface
func (a *Ants) Count() int {
	return a.store.Len() + a.store.Pending()
}

// Mount starts with a single ant and waits for the section to scroll in
func (a *Ants) Mount(host *engine.ScrollHost) error {
	if err := a.attach(host); err != nil {
		return err
	}
	if err := a.populate(); err != nil {
		return err
	}
	err := a.register(engine.Anchor{
		ID:          "ants.section",
		Section:     AntSection,
		Start:       "top center",
		OnEnter:     a.grow,
		OnLeaveBack: a.reset,
	})
	if err != nil {
		return fmt.Errorf("mount ants: %w", err)
	}
	return nil
}

func (a *Ants) populate() error {
	err := a.store.Populate(1)
	if err != nil && !errors.Is(err, engine.ErrEmptySurface) {
		return err
	}
	return nil
}

func (a *Ants) append(n int, policy engine.SpawnPolicy) {
	if err := a.store.Append(n, policy); err != nil {
		if errors.Is(err, engine.ErrEmptySurface) {
			a.logger.Debug("ants deferred", zap.Int("count", n))
			return
		}
		a.logger.Warn("adding ants failed", zap.Error(err))
	}
}

// grow restarts from one ant and adds the configured batches over time
func (a *Ants) grow() {
	a.cancelGrowth()
	if err := a.populate(); err != nil {
		a.logger.Warn("restarting swarm failed", zap.Error(err))
		return
	}
	for _, batch := range a.cfg.Growth {
		n := batch.Count
		h := a.after(batch.At, fmt.Sprintf("add %d ants", n), func() {
			a.append(n, engine.SpawnInside)
		})
		a.growth = append(a.growth, h)
	}
	if n := a.cfg.Swarm.Count; n > 0 {
		h := a.after(a.cfg.Swarm.At, fmt.Sprintf("swarm %d ants", n), func() {
			a.Swarm(n)
		})
		a.growth = append(a.growth, h)
	}
}

// reset drops back to a single ant
func (a *Ants) reset() {
	a.cancelGrowth()
	if err := a.populate(); err != nil {
		a.logger.Warn("resetting swarm failed", zap.Error(err))
	}
}

func (a *Ants) cancelGrowth() {
	for _, h := range a.growth {
		a.sched.Cancel(h)
	}
	a.growth = a.growth[:0]
}

// Swarm sends n more ants in from past the edges
func (a *Ants) Swarm(n int) {
	a.append(n, engine.SpawnOffscreen)
}

// Resize flushes ants that were waiting for a sized surface
func (a *Ants) Resize(b engine.Bounds) error {
	if _, err := a.store.Resize(b); err != nil {
		return fmt.Errorf("resize ants: %w", err)
	}
	return nil
}

func (a *Ants) Update(dt float64) {
	a.tick(dt)
	if a.closed {
		return
	}
	a.integrator.Step(a.store, engine.ModeNeutral)
}

// Draw paints the purple backdrop and the ants
func (a *Ants) Draw(s engine.Surface) bool {
	return a.renderer.Draw(s, engine.Frame{
		Particles:  a.store.Particles,
		Mode:       engine.ModeActive,
		Background: engine.NRGBA(engine.AntBackground, 1),
		Alpha:      1,
		Sprite:     AntSprite,
	})
}
