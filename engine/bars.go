package engine

import colorful "github.com/lucasb-eyer/go-colorful"

// Bar is one horizontal parallax band
type Bar struct {
	Color    colorful.Color
	Y        float64
	Height   float64
	Width    float64
	Progress float64
}

// Bars is a stack of full-width bands whose widths follow a scroll progress
type Bars struct {
	Items []Bar

	// Stagger delays each successive bar's start by this much progress
	Stagger float64

	Ease Ease
}

// NewBars creates one bar per palette tone
func NewBars(p Palette) *Bars {
	bars := &Bars{
		Items:   make([]Bar, len(p.Tones)),
		Stagger: 0.1,
		Ease:    Power2Out,
	}
	for i, c := range p.Tones {
		bars.Items[i].Color = c
	}
	return bars
}

// Layout splits the surface height evenly and resets widths
func (bs *Bars) Layout(b Bounds) {
	if len(bs.Items) == 0 {
		return
	}
	h := b.H / float64(len(bs.Items))
	for i := range bs.Items {
		bs.Items[i].Height = h
		bs.Items[i].Y = h * float64(i)
		bs.Items[i].Width = 0
		bs.Items[i].Progress = 0
	}
}

// Apply sets each bar's width from the overall progress in [0,1]
func (bs *Bars) Apply(progress float64, b Bounds) {
	for i := range bs.Items {
		start := float64(i) * bs.Stagger
		local := 0.0
		if start < 1 {
			local = max(0, (progress-start)/(1-start))
		}
		eased := bs.Ease(min(1, local))

		bs.Items[i].Width = b.W * eased
		bs.Items[i].Progress = eased
	}
}

// Draw paints the bars over a cleared surface
func (bs *Bars) Draw(s Surface, alpha float64) bool {
	if s == nil || s.Size().Empty() {
		return false
	}
	s.Clear()
	for _, bar := range bs.Items {
		if bar.Width <= 0 {
			continue
		}
		s.FillRect(0, bar.Y, bar.Width, bar.Height, NRGBA(bar.Color, alpha))
	}
	return true
}
