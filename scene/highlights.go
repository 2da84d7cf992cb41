package scene

import (
	"go.uber.org/zap"

	"swarmfield/engine"
)

const (
	highlightStart   = 2.0
	highlightGrow    = 0.8
	highlightStagger = 0.3
	highlightHold    = 2.0
	highlightRestart = 0.5
	highlightAlpha   = 0.6
)

// Highlights sweeps coloured markers behind the lines of the lose section,
// one after another, then clears them and starts over
type Highlights struct {
	base

	palette engine.Palette
	scales  []float64
	cycles  int
}

// NewHighlights creates the highlight loop
func NewHighlights(logger *zap.Logger) *Highlights {
	return &Highlights{
		base:    newBase(NameHighlights, logger),
		palette: engine.HighlightColors,
		scales:  make([]float64, len(engine.HighlightColors.Tones)),
	}
}

func (hl *Highlights) Section() string { return LoseSection }

// Scales returns the horizontal scale of every sweep in [0,1]
func (hl *Highlights) Scales() []float64 { return hl.scales }

// Cycles returns how many times the sweep has started
func (hl *Highlights) Cycles() int { return hl.cycles }

// Mount starts the loop a little after load
func (hl *Highlights) Mount(host *engine.ScrollHost) error {
	if err := hl.attach(host); err != nil {
		return err
	}
	hl.after(highlightStart, "start highlights", hl.sweep)
	return nil
}

func (hl *Highlights) sweep() {
	hl.cycles++
	last := len(hl.scales) - 1
	for i := range hl.scales {
		hl.scales[i] = 0
		opts := []engine.TweenOption{engine.Delay(float64(i) * highlightStagger)}
		if i == last {
			opts = append(opts, engine.OnComplete(hl.hold))
		}
		hl.anim.Float(&hl.scales[i], 1, highlightGrow, engine.Power2Out, opts...)
	}
}

// hold keeps the finished sweep on screen, then clears it and restarts
func (hl *Highlights) hold() {
	hl.after(highlightHold, "clear highlights", func() {
		for i := range hl.scales {
			hl.scales[i] = 0
		}
		hl.after(highlightRestart, "restart highlights", hl.sweep)
	})
}

func (hl *Highlights) Resize(b engine.Bounds) error { return nil }

func (hl *Highlights) Update(dt float64) {
	hl.tick(dt)
}

// Draw paints each sweep growing from the left edge of its line
func (hl *Highlights) Draw(s engine.Surface) bool {
	if s == nil {
		return false
	}
	b := s.Size()
	if b.Empty() {
		return false
	}
	s.Clear()

	x, w := b.W*0.15, b.W*0.7
	lineH := b.H * 0.06
	for i, scale := range hl.scales {
		if scale <= 0 {
			continue
		}
		y := b.H*0.3 + float64(i)*b.H*0.09
		s.FillRect(x, y, w*scale, lineH, engine.NRGBA(hl.palette.Tone(i), highlightAlpha))
	}
	return true
}
