package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"swarmfield/engine"
)

// Headline labels
const (
	LabelNeutral = "It's\nnot Artificial\nIntelligence"
	LabelActive  = "It's\nCollective\nIntelligence"
)

const (
	introDelay   = 1.5
	introFade    = 0.3
	labelFadeOut = 0.6
	labelFadeIn  = 0.8

	// morphDuration is the colour/velocity/position change on a mode switch
	morphDuration = 1.5

	dimAlpha     = 0.2
	dimDuration  = 1.0
	exitStagger  = 0.1
	exitDuration = 2.0
	exitMargin   = 200.0
	lineAlpha    = 0.6
)

// Hero is the shapes layer behind the headline. It starts as a grey connected
// network and turns into coloured drifting shapes as the reader scrolls.
type Hero struct {
	base

	cfg        HeroConfig
	layout     *engine.NetworkLayout
	store      *engine.Store
	integrator *engine.Integrator
	controller *engine.Controller
	renderer   *engine.Renderer
	connector  engine.Connector
	rand       *rand.Rand

	// target is the mode the latest scroll trigger asked for; the controller
	// only catches up once the label swap runs
	target       engine.Mode
	swap         engine.Handle
	pendingLabel string
	settling     bool

	label      string
	labelAlpha float64
	alpha      float64

	// sized is the last non-empty surface the network was laid out on
	sized engine.Bounds
}

// NewHero creates the shapes layer
func NewHero(cfg HeroConfig, rng *rand.Rand, logger *zap.Logger) (*Hero, error) {
	layout, ok := engine.LayoutByName(cfg.Layout)
	if !ok {
		return nil, fmt.Errorf("unknown network layout %q", cfg.Layout)
	}
	boundary, err := boundaryByName(cfg.Boundary)
	if err != nil {
		return nil, err
	}

	h := &Hero{
		base:     newBase(NameHero, logger),
		cfg:      cfg,
		layout:   layout,
		renderer: engine.NewRenderer(),
		rand:     rng,
		alpha:    1,
	}
	h.store = engine.NewStore(engine.NewNetworkFactory(layout), rng)
	h.integrator = engine.NewIntegrator(engine.Orbit{}, engine.Drift{Boundary: boundary}, rng)
	h.controller = engine.NewController(h.Clock, cfg.Transition, h.logger)
	h.controller.Subscribe(h.onMode)

	switch cfg.Connections {
	case "", "fixed":
		h.connector = engine.FixedEdges(layout.Edges)
	case "proximity":
		h.connector = engine.NewProximityEdges(cfg.ProximityRadius)
	default:
		return nil, fmt.Errorf("unknown connection style %q", cfg.Connections)
	}
	return h, nil
}

func boundaryByName(name string) (engine.Boundary, error) {
	switch name {
	case "", "wrap":
		return engine.Wrap{}, nil
	case "fall":
		return engine.FallWrap{}, nil
	case "bounce":
		return engine.Bounce{X: true, Y: true}, nil
	}
	return nil, fmt.Errorf("unknown boundary policy %q", name)
}

// Section is empty: the shapes stay behind the whole page
func (h *Hero) Section() string { return "" }

// Store exposes the particles
func (h *Hero) Store() *engine.Store { return h.store }

// Controller exposes the mode owner
func (h *Hero) Controller() *engine.Controller { return h.controller }

// Mode returns the current mode
func (h *Hero) Mode() engine.Mode { return h.controller.Mode() }

// Alpha returns the layer opacity
func (h *Hero) Alpha() float64 { return h.alpha }

// Headline returns the label text and its current opacity
func (h *Hero) Headline() (string, float64) {
	return h.label, h.labelAlpha
}

// Mount creates the network and registers the scroll triggers
func (h *Hero) Mount(host *engine.ScrollHost) error {
	if err := h.attach(host); err != nil {
		return err
	}
	if err := h.store.Populate(len(h.layout.Nodes)); err != nil {
		if !errors.Is(err, engine.ErrEmptySurface) {
			return err
		}
		h.logger.Debug("surface not sized yet, network deferred")
	}

	h.after(introDelay, "intro label", h.intro)

	anchors := []engine.Anchor{
		{
			ID:          "hero.body",
			Section:     engine.BodySection,
			Start:       "top top-=10",
			OnEnter:     func() { h.morph(engine.ModeActive, LabelActive) },
			OnLeaveBack: func() { h.morph(engine.ModeNeutral, LabelNeutral) },
		},
		{
			ID:          "hero.lose",
			Section:     LoseSection,
			Start:       "30% center",
			OnEnter:     func() { h.shift(engine.ModeNeutral) },
			OnLeaveBack: func() { h.shift(engine.ModeActive) },
		},
		{
			ID:          "hero.content",
			Section:     ContentSection,
			Start:       "top center",
			OnEnter:     h.dim,
			OnLeaveBack: func() { h.fadeLayer(1) },
		},
		{
			ID:          "hero.connect",
			Section:     ConnectSection,
			Start:       "top center",
			OnEnter:     h.Exit,
			OnLeaveBack: h.Return,
		},
	}
	for _, a := range anchors {
		if err := h.register(a); err != nil {
			return fmt.Errorf("mount hero: %w", err)
		}
	}
	return nil
}

// intro shows the first headline unless a scroll trigger already set one
func (h *Hero) intro() {
	if h.controller.Label() != "" {
		return
	}
	label := LabelNeutral
	if h.controller.Mode() == engine.ModeActive {
		label = LabelActive
	}
	if h.controller.Request(h.controller.Mode(), label, engine.SourceTimer) {
		h.anim.Float(&h.labelAlpha, 1, introFade, engine.Power2Out)
	}
}

// morph fades the headline out, switches mode and label together, then fades
// the headline back in
func (h *Hero) morph(mode engine.Mode, label string) {
	if h.target == mode {
		return
	}
	h.target = mode
	h.controller.Hold(labelFadeOut)
	h.sched.Cancel(h.swap)

	h.anim.Float(&h.labelAlpha, 0, labelFadeOut, engine.Power2Out)
	h.pendingLabel = label
	h.swap = h.after(labelFadeOut, "swap label", func() {
		h.swap = 0
		h.controller.Request(mode, label, engine.SourceScroll)
		h.anim.Float(&h.labelAlpha, 1, labelFadeIn, engine.Power2Out)
	})
}

// shift changes the mode without touching the headline
func (h *Hero) shift(mode engine.Mode) {
	if h.target == mode {
		return
	}
	h.target = mode

	label := ""
	if h.swap != 0 && h.sched.Cancel(h.swap) {
		// a label swap was still pending; finish it now with the newer mode
		h.swap = 0
		label = h.pendingLabel
		h.anim.Float(&h.labelAlpha, 1, labelFadeIn, engine.Power2Out)
	}
	h.controller.Request(mode, label, engine.SourceScroll)
}

// dim fades the layer behind the content and keeps active shapes moving
func (h *Hero) dim() {
	h.fadeLayer(dimAlpha)
	if h.controller.Mode() != engine.ModeActive {
		return
	}
	for i := range h.store.Particles {
		h.wander(i)
	}
}

func (h *Hero) fadeLayer(alpha float64) {
	h.anim.Float(&h.alpha, alpha, dimDuration, engine.Power2Out)
}

func (h *Hero) onMode(ev engine.ModeEvent) {
	h.label = ev.Label
	if ev.From == ev.To {
		return
	}
	h.logger.Debug("hero mode", zap.Stringer("to", ev.To), zap.Stringer("source", ev.Source))

	switch {
	case ev.To == engine.ModeActive:
		h.toActive()
	case h.settling:
		h.settleInPlace()
	default:
		h.toNeutral()
	}
}

// toActive blends every shape to its own colour and sets it wandering
func (h *Hero) toActive() {
	for i := range h.store.Particles {
		h.anim.Cancel(engine.TweenKey{Target: h.store, Index: i, Prop: engine.PropPosition})
		h.anim.Color(h.store, i, h.store.Particles[i].Original, morphDuration, engine.Power2Out)
		h.wander(i)
	}
}

// wander eases shape i toward a random velocity and picks a new one when it
// arrives, for as long as the layer stays active
func (h *Hero) wander(i int) {
	angle := h.rand.Float64() * 2 * math.Pi
	speed := 0.5 + h.rand.Float64()*0.8
	duration := 2 + h.rand.Float64()*3

	h.anim.Velocity(h.store, i, engine.Polar(angle, speed), duration, engine.Power2InOut,
		engine.OnComplete(func() {
			if !h.closed && h.controller.Mode() == engine.ModeActive {
				h.wander(i)
			}
		}))
}

// toNeutral greys the shapes and glides them back onto the network
func (h *Hero) toNeutral() {
	b := h.store.Bounds()
	for i := range h.store.Particles {
		p := &h.store.Particles[i]
		h.reanchor(p, b)

		h.anim.Color(h.store, i, h.layout.Palette.Neutral, morphDuration, engine.Power2Out)
		h.anim.Velocity(h.store, i, engine.Vec2{}, morphDuration, engine.Power2Out)
		h.anim.Position(h.store, i, p.OrbitPoint(), morphDuration, engine.Power2Out, false)
	}
}

// settleInPlace greys the shapes where they are and orbits them there
func (h *Hero) settleInPlace() {
	for i := range h.store.Particles {
		p := &h.store.Particles[i]
		p.Anchor = p.Pos.Sub(engine.Polar(p.FloatAngle, p.FloatRadius))

		h.anim.Color(h.store, i, h.layout.Palette.Neutral, morphDuration, engine.Power2Out)
		h.anim.Velocity(h.store, i, engine.Vec2{}, morphDuration, engine.Power2Out)
	}
}

func (h *Hero) reanchor(p *engine.Particle, b engine.Bounds) {
	node := h.layout.Node(p.ID)
	p.Anchor = engine.Vec2{X: node.X * b.W, Y: node.Y * b.H}
	p.FloatRadius, p.FloatSpeed, p.FloatAngle = h.layout.Float(p.ID)
}

// Settle turns the shapes grey and stops them where they are, keeping the
// connections
func (h *Hero) Settle() {
	h.target = engine.ModeNeutral
	if h.swap != 0 && h.sched.Cancel(h.swap) {
		h.anim.Float(&h.labelAlpha, 1, labelFadeIn, engine.Power2Out)
	}
	h.swap = 0
	h.settling = true
	h.controller.Request(engine.ModeNeutral, "", engine.SourceScroll)
	h.settling = false
}

// Exit sends every shape off a random corner, one after another
func (h *Hero) Exit() {
	b := h.store.Bounds()
	for i := range h.store.Particles {
		dest := engine.Vec2{X: -exitMargin, Y: -exitMargin}
		if h.rand.Float64() > 0.5 {
			dest.X = b.W + exitMargin
		}
		if h.rand.Float64() > 0.5 {
			dest.Y = b.H + exitMargin
		}
		h.anim.Position(h.store, i, dest, exitDuration, engine.Power2In, true,
			engine.Delay(float64(i)*exitStagger))
	}
}

// Return brings the shapes back from the corners: onto the network when
// neutral, released to wander when active
func (h *Hero) Return() {
	if h.controller.Mode() == engine.ModeActive {
		for i := range h.store.Particles {
			h.anim.Cancel(engine.TweenKey{Target: h.store, Index: i, Prop: engine.PropPosition})
			h.store.Particles[i].Held = false
			h.wander(i)
		}
		return
	}
	h.toNeutral()
}

// Resize flushes deferred shapes and scales the network to the new size. A
// zero-area size leaves the shapes where they are; the next real size scales
// from the last one they were laid out on.
func (h *Hero) Resize(b engine.Bounds) error {
	if _, err := h.store.Resize(b); err != nil {
		return fmt.Errorf("resize hero: %w", err)
	}
	if b.Empty() {
		return nil
	}
	from := h.sized
	h.sized = b
	if from.Empty() || from == b {
		return nil
	}

	sx, sy := b.W/from.W, b.H/from.H
	for i := range h.store.Particles {
		p := &h.store.Particles[i]
		p.Anchor = engine.Vec2{X: p.Anchor.X * sx, Y: p.Anchor.Y * sy}
		p.Pos = engine.Vec2{X: p.Pos.X * sx, Y: p.Pos.Y * sy}
	}
	return nil
}

// Update runs timers and tweens, then moves the shapes
func (h *Hero) Update(dt float64) {
	h.tick(dt)
	if h.closed {
		return
	}
	h.integrator.Step(h.store, h.controller.Mode())
}

// Draw paints the network or the drifting shapes
func (h *Hero) Draw(s engine.Surface) bool {
	return h.renderer.Draw(s, engine.Frame{
		Particles: h.store.Particles,
		Mode:      h.controller.Mode(),
		Connector: h.connector,
		LineColor: h.layout.Palette.Neutral,
		LineAlpha: lineAlpha,
		Alpha:     h.alpha,
	})
}
