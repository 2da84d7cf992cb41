package engine_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmfield/engine"
	"swarmfield/engine/recorder"
)

func networkFrame(t *testing.T, mode engine.Mode) engine.Frame {
	store := networkStore(t)
	return engine.Frame{
		Particles: store.Particles,
		Mode:      mode,
		Connector: engine.FixedEdges(engine.ClassicNetwork.Edges),
		LineColor: engine.ClassicPalette.Neutral,
		LineAlpha: 0.3,
		Alpha:     1,
	}
}

func TestRenderSkipsMissingSurface(t *testing.T) {
	r := engine.NewRenderer()
	frame := networkFrame(t, engine.ModeNeutral)

	assert.False(t, r.Draw(nil, frame))

	empty := recorder.New(0, 600)
	assert.False(t, r.Draw(empty, frame))
	assert.Empty(t, empty.Calls)
	assert.Equal(t, 2, r.Skipped())
}

func TestRenderNeutralDrawsConnections(t *testing.T) {
	r := engine.NewRenderer()
	s := recorder.New(1000, 800)

	require.True(t, r.Draw(s, networkFrame(t, engine.ModeNeutral)))

	assert.Equal(t, 1, s.Count(recorder.OpClear))
	assert.Equal(t, len(engine.ClassicNetwork.Edges), s.Count(recorder.OpLine))
	assert.Equal(t, 2, s.Count(recorder.OpTriangle))
	assert.Equal(t, 4, s.Count(recorder.OpRounded))
	assert.Equal(t, 2, s.Count(recorder.OpCircle))

	// lines go behind the shapes
	assert.Equal(t, recorder.OpLine, s.Calls[1].Op)
}

func TestRenderActiveHidesConnections(t *testing.T) {
	r := engine.NewRenderer()
	s := recorder.New(1000, 800)

	require.True(t, r.Draw(s, networkFrame(t, engine.ModeActive)))

	assert.Zero(t, s.Count(recorder.OpLine))
	assert.Equal(t, 8, s.Count(recorder.OpTriangle)+s.Count(recorder.OpRounded)+s.Count(recorder.OpCircle))
}

func TestRenderFillsBackground(t *testing.T) {
	r := engine.NewRenderer()
	s := recorder.New(1000, 800)
	frame := engine.Frame{Background: engine.NRGBA(engine.AntBackground, 1), Alpha: 1}

	require.True(t, r.Draw(s, frame))

	require.Len(t, s.Calls, 1)
	assert.Equal(t, recorder.OpFill, s.Calls[0].Op)
	assert.Equal(t, color.NRGBA{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF}, s.Calls[0].Color)
}

func TestRenderMissingSpriteDrawsNothing(t *testing.T) {
	r := engine.NewRenderer()
	store := newAntStore(t, 1000, 800)
	require.NoError(t, store.Append(3, engine.SpawnInside))
	frame := engine.Frame{Particles: store.Particles, Mode: engine.ModeActive, Alpha: 1, Sprite: "ant"}

	s := recorder.New(1000, 800)
	require.True(t, r.Draw(s, frame))
	assert.Zero(t, s.Count(recorder.OpSprite))

	s = recorder.New(1000, 800)
	s.Sprites["ant"] = true
	require.True(t, r.Draw(s, frame))
	assert.Equal(t, 3, s.Count(recorder.OpSprite))
}

func TestNRGBAClampsAlpha(t *testing.T) {
	c := engine.NRGBA(engine.ClassicPalette.Neutral, 2)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, uint8(0x66), c.R)

	assert.Equal(t, uint8(0), engine.NRGBA(engine.ClassicPalette.Neutral, -1).A)
}

func TestFixedEdgesSkipMissingParticles(t *testing.T) {
	edges := engine.FixedEdges{{0, 1}, {1, 5}, {2, 3}}
	particles := make([]engine.Particle, 4)

	assert.Equal(t, []engine.Edge{{0, 1}, {2, 3}}, edges.Edges(particles, engine.Bounds{W: 10, H: 10}))
}

func TestProximityEdges(t *testing.T) {
	particles := []engine.Particle{
		{Pos: engine.Vec2{X: 0, Y: 0}},
		{Pos: engine.Vec2{X: 90, Y: 0}},
		{Pos: engine.Vec2{X: 400, Y: 300}},
		{Pos: engine.Vec2{X: 450, Y: 340}},
		{Pos: engine.Vec2{X: -30, Y: 10}},
	}
	pe := engine.NewProximityEdges(100)

	edges := pe.Edges(particles, engine.Bounds{W: 500, H: 400})

	assert.ElementsMatch(t, []engine.Edge{{0, 1}, {0, 4}, {2, 3}}, edges)
}

func TestBarsFollowProgress(t *testing.T) {
	bars := engine.NewBars(engine.BarColors)
	b := engine.Bounds{W: 1200, H: 600}
	bars.Layout(b)
	require.Len(t, bars.Items, 6)
	assert.Equal(t, 100.0, bars.Items[1].Height)
	assert.Equal(t, 500.0, bars.Items[5].Y)

	bars.Apply(0, b)
	for _, bar := range bars.Items {
		assert.Zero(t, bar.Width)
	}

	bars.Apply(0.3, b)
	// later bars start later
	for i := 1; i < len(bars.Items); i++ {
		assert.LessOrEqual(t, bars.Items[i].Width, bars.Items[i-1].Width)
	}
	assert.Zero(t, bars.Items[5].Width)

	bars.Apply(1, b)
	s := recorder.New(1200, 600)
	require.True(t, bars.Draw(s, 1))
	assert.Equal(t, 6, s.Count(recorder.OpRect))
	for _, bar := range bars.Items {
		assert.InDelta(t, 1200, bar.Width, 1e-9)
	}
}
