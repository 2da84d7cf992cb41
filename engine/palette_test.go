package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmfield/engine"
)

func TestPalettesParse(t *testing.T) {
	assert.Equal(t, "#666666", engine.BrandPalette.Neutral.Hex())
	require.Len(t, engine.BrandPalette.Tones, 6)
	assert.Equal(t, "#e80954", engine.BrandPalette.Tones[0].Hex())
	assert.Len(t, engine.ClassicPalette.Tones, 5)
	assert.Equal(t, "#8b5cf6", engine.AntBackground.Hex())
}

func TestPaletteToneWraps(t *testing.T) {
	p := engine.NewPalette("#000000", "#ff0000", "#00ff00")

	assert.Equal(t, p.Tones[0], p.Tone(0))
	assert.Equal(t, p.Tones[1], p.Tone(3))

	// without tones every index gets the neutral colour
	grey := engine.NewPalette("#123456")
	assert.Equal(t, grey.Neutral, grey.Tone(4))
}

func TestNewPalettePanicsOnBadColour(t *testing.T) {
	assert.Panics(t, func() { engine.NewPalette("grey") })
	assert.Panics(t, func() { engine.NewPalette("#666666", "#zz0000") })
}
