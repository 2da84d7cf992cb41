package engine

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the neutral tone and the per-particle tones of active mode
type Palette struct {
	Neutral colorful.Color
	Tones   []colorful.Color
}

// Tone returns the active-mode colour for a particle index
func (p Palette) Tone(index int) colorful.Color {
	if len(p.Tones) == 0 {
		return p.Neutral
	}
	return p.Tones[index%len(p.Tones)]
}

// mustHex parses a colour literal and panics if it is malformed
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("palette colour %q: %v", s, err))
	}
	return c
}

// NewPalette parses hex colours into a palette, panicking on malformed literals
func NewPalette(neutral string, tones ...string) Palette {
	p := Palette{
		Neutral: mustHex(neutral),
		Tones:   make([]colorful.Color, 0, len(tones)),
	}
	for _, t := range tones {
		p.Tones = append(p.Tones, mustHex(t))
	}
	return p
}

var (
	// ClassicPalette is purple, green, yellow, blue, red over grey
	ClassicPalette = NewPalette("#666666", "#8B5CF6", "#10B981", "#F59E0B", "#3B82F6", "#EF4444")

	// BrandPalette is the six-tone palette used by the extended network
	BrandPalette = NewPalette("#666666", "#E80954", "#CCFF00", "#0764E5", "#F6821F", "#2DB35E", "#8D1EB1")

	// BarColors are the parallax bar fills, top to bottom
	BarColors = NewPalette("#FFFFFF", "#E91E63", "#CDDC39", "#2196F3", "#FF5722", "#4CAF50", "#8B5CF6")

	// HighlightColors are the sweep colours behind the highlighted lines
	HighlightColors = NewPalette("#FFFFFF", "#FF8C00", "#C147E9", "#00CED1", "#4A90E2", "#E91E63")

	// AntBackground is the purple fill behind the ant swarm
	AntBackground = mustHex("#8B5CF6")
)
