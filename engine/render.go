package engine

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Surface is the 2D drawing context a scene paints on. The host sizes it and
// keeps the size in sync; it may briefly report zero area.
type Surface interface {
	Size() Bounds
	Clear()
	Fill(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	FillTriangle(a, b, c Vec2, clr color.Color)
	FillRoundedRect(x, y, w, h, radius float64, c color.Color)
	StrokeLine(a, b Vec2, width float64, c color.Color)

	// DrawSprite draws a named bitmap centred on pos, scaled to size and rotated.
	// It returns false when the sprite is not available.
	DrawSprite(name string, pos Vec2, size, rotation, alpha float64) bool
}

// NRGBA converts a colour with an opacity in [0,1]
func NRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp(alpha, 0, 1)*255 + 0.5)}
}

// Frame is everything the renderer needs for one repaint of a particle layer
type Frame struct {
	Particles []Particle
	Mode      Mode

	// Background fills the surface; nil clears it instead
	Background color.Color

	// Connector draws lines between particles in neutral mode; nil draws none
	Connector Connector
	LineColor colorful.Color
	LineAlpha float64

	// Alpha is the opacity of the whole layer
	Alpha float64

	// Sprite names the bitmap used for KindSprite particles
	Sprite string
}

// Renderer paints particle frames onto a surface
type Renderer struct {
	// CornerRadius for rounded rectangles
	CornerRadius float64

	// LineWidth for connections
	LineWidth float64

	skipped int
}

// NewRenderer creates a renderer with the page's default styling
func NewRenderer() *Renderer {
	return &Renderer{CornerRadius: 12, LineWidth: 2}
}

// Skipped returns how many frames were skipped for lack of a surface
func (r *Renderer) Skipped() int {
	return r.skipped
}

// Draw repaints the surface. It returns false without drawing when the
// surface is missing or has no area; the caller simply tries again next frame.
func (r *Renderer) Draw(s Surface, f Frame) bool {
	if s == nil {
		r.skipped++
		return false
	}
	b := s.Size()
	if b.Empty() {
		r.skipped++
		return false
	}

	if f.Background != nil {
		s.Fill(f.Background)
	} else {
		s.Clear()
	}

	// connections go behind the shapes and only exist in the grey network
	if f.Mode == ModeNeutral && f.Connector != nil {
		line := NRGBA(f.LineColor, f.LineAlpha*f.Alpha)
		for _, e := range f.Connector.Edges(f.Particles, b) {
			s.StrokeLine(f.Particles[e[0]].Pos, f.Particles[e[1]].Pos, r.LineWidth, line)
		}
	}

	for i := range f.Particles {
		r.drawParticle(s, &f.Particles[i], f)
	}
	return true
}

func (r *Renderer) drawParticle(s Surface, p *Particle, f Frame) {
	half := p.Size / 2
	clr := NRGBA(p.Color, f.Alpha)

	switch p.Kind {
	case KindCircle:
		s.FillCircle(p.Pos.X, p.Pos.Y, half, clr)
	case KindTriangle:
		s.FillTriangle(
			Vec2{p.Pos.X, p.Pos.Y - half},
			Vec2{p.Pos.X - half, p.Pos.Y + half},
			Vec2{p.Pos.X + half, p.Pos.Y + half},
			clr,
		)
	case KindRoundedRect:
		s.FillRoundedRect(p.Pos.X-half, p.Pos.Y-half, p.Size, p.Size, r.CornerRadius, clr)
	case KindSprite:
		// a missing sprite draws nothing
		s.DrawSprite(f.Sprite, p.Pos, p.Size, p.Rotation, f.Alpha)
	}
}
