package scene

import (
	"fmt"

	"go.uber.org/zap"

	"swarmfield/engine"
)

// barScrub is the smoothing applied to the bars' scroll progress (seconds)
const barScrub = 1.0

// Bars grows six coloured bands across the screen as the content section
// scrolls past
type Bars struct {
	base

	bars     *engine.Bars
	bounds   engine.Bounds
	progress float64
}

// NewBars creates the parallax bars layer
func NewBars(logger *zap.Logger) *Bars {
	return &Bars{
		base: newBase(NameBars, logger),
		bars: engine.NewBars(engine.BarColors),
	}
}

func (b *Bars) Section() string { return BarsSection }

// Progress returns the smoothed scroll progress the widths follow
func (b *Bars) Progress() float64 { return b.progress }

// Items exposes the bars
func (b *Bars) Items() []engine.Bar { return b.bars.Items }

func (b *Bars) Mount(host *engine.ScrollHost) error {
	if err := b.attach(host); err != nil {
		return err
	}
	err := b.register(engine.Anchor{
		ID:         "bars.content",
		Section:    ContentSection,
		Start:      "center bottom",
		End:        "bottom top",
		Scrub:      barScrub,
		OnProgress: b.apply,
	})
	if err != nil {
		return fmt.Errorf("mount bars: %w", err)
	}
	return nil
}

func (b *Bars) apply(p float64) {
	b.progress = p
	b.bars.Apply(p, b.bounds)
}

// Resize splits the new height between the bars and reapplies the progress
func (b *Bars) Resize(bounds engine.Bounds) error {
	b.bounds = bounds
	b.bars.Layout(bounds)
	b.bars.Apply(b.progress, bounds)
	return nil
}

func (b *Bars) Update(dt float64) {
	b.tick(dt)
}

func (b *Bars) Draw(s engine.Surface) bool {
	return b.bars.Draw(s, 1)
}
