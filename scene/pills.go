package scene

import (
	"fmt"

	"go.uber.org/zap"

	"swarmfield/engine"
)

const (
	pillCount   = 3
	pillRise    = 60.0
	pillReveal  = 0.8
	pillStagger = 3.0
)

// Pill is one protection card; Offset is how far below its resting place it sits
type Pill struct {
	Offset float64
	Alpha  float64
}

// Pills reveals the protection cards one by one when their section scrolls in
type Pills struct {
	base

	pills    []Pill
	revealed bool
}

// NewPills creates the hidden cards
func NewPills(logger *zap.Logger) *Pills {
	p := &Pills{
		base:  newBase(NamePills, logger),
		pills: make([]Pill, pillCount),
	}
	for i := range p.pills {
		p.pills[i] = Pill{Offset: pillRise}
	}
	return p
}

func (p *Pills) Section() string { return ProtectionSection }

// Cards exposes the cards
func (p *Pills) Cards() []Pill { return p.pills }

// Revealed reports whether the section has been reached
func (p *Pills) Revealed() bool { return p.revealed }

func (p *Pills) Mount(host *engine.ScrollHost) error {
	if err := p.attach(host); err != nil {
		return err
	}
	err := p.register(engine.Anchor{
		ID:      "pills.protection",
		Section: ProtectionSection,
		Start:   "top center",
		OnEnter: p.reveal,
	})
	if err != nil {
		return fmt.Errorf("mount pills: %w", err)
	}
	return nil
}

// reveal raises the cards into place a few seconds apart
func (p *Pills) reveal() {
	p.revealed = true
	for i := range p.pills {
		delay := engine.Delay(float64(i) * pillStagger)
		p.anim.Float(&p.pills[i].Offset, 0, pillReveal, engine.Power2Out, delay)
		p.anim.Float(&p.pills[i].Alpha, 1, pillReveal, engine.Power2Out, delay)
	}
}

func (p *Pills) Resize(b engine.Bounds) error { return nil }

func (p *Pills) Update(dt float64) {
	p.tick(dt)
}

// Draw paints the cards side by side
func (p *Pills) Draw(s engine.Surface) bool {
	if s == nil {
		return false
	}
	b := s.Size()
	if b.Empty() {
		return false
	}
	s.Clear()

	w, h := b.W*0.25, b.H*0.55
	gap := (b.W - w*pillCount) / (pillCount + 1)
	for i, pill := range p.pills {
		if pill.Alpha <= 0 {
			continue
		}
		x := gap + float64(i)*(w+gap)
		y := b.H*0.25 + pill.Offset
		s.FillRoundedRect(x, y, w, h, 24, engine.NRGBA(engine.BrandPalette.Tone(i), pill.Alpha))
	}
	return true
}
