package engine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmfield/engine"
)

func newAntStore(t *testing.T, w, h float64) *engine.Store {
	t.Helper()
	store := engine.NewStore(engine.NewAntFactory(rand.New(rand.NewSource(7))), rand.New(rand.NewSource(8)))
	_, err := store.Resize(engine.Bounds{W: w, H: h})
	require.NoError(t, err)
	return store
}

func TestNetworkIdleStepKeepsPositions(t *testing.T) {
	store := engine.NewStore(engine.NewNetworkFactory(&engine.ClassicNetwork), rand.New(rand.NewSource(1)))
	_, err := store.Resize(engine.Bounds{W: 1000, H: 800})
	require.NoError(t, err)
	require.NoError(t, store.Populate(8))
	require.Equal(t, 8, store.Len())

	before := make([]engine.Vec2, store.Len())
	for i, p := range store.Particles {
		assert.Zero(t, p.Speed())
		before[i] = p.Pos
	}

	in := engine.NewIntegrator(engine.Orbit{}, engine.Drift{Boundary: engine.Wrap{}}, rand.New(rand.NewSource(1)))
	in.Step(store, engine.ModeNeutral)

	for i, p := range store.Particles {
		assert.Equal(t, before[i], p.Pos, "particle %d", i)
	}
}

func TestNetworkFactoryPlacesNodes(t *testing.T) {
	f := engine.NewNetworkFactory(&engine.ClassicNetwork)

	p, err := f.Create(2, engine.Bounds{W: 1000, H: 800})
	require.NoError(t, err)

	assert.Equal(t, 2, p.ID)
	assert.InDelta(t, 850, p.Pos.X, 1e-9)
	assert.InDelta(t, 240, p.Pos.Y, 1e-9)
	assert.Equal(t, engine.KindRoundedRect, p.Kind)
	assert.Equal(t, 100.0, p.Size)
	assert.Equal(t, engine.ClassicPalette.Neutral, p.Color)
	assert.Equal(t, engine.ClassicPalette.Tone(2), p.Original)
	assert.NotEqual(t, p.Color, p.Original)

	_, err = f.Create(0, engine.Bounds{})
	assert.ErrorIs(t, err, engine.ErrEmptySurface)
}

func TestExtendedNetworkFloats(t *testing.T) {
	f := engine.NewNetworkFactory(&engine.ExtendedNetwork)

	p, err := f.Create(3, engine.Bounds{W: 1000, H: 800})
	require.NoError(t, err)

	assert.Equal(t, 30.0, p.FloatRadius)
	assert.InDelta(t, 0.039, p.FloatSpeed, 1e-12)
	assert.InDelta(t, 30, p.Pos.Sub(p.Anchor).Len(), 1e-9)
}

func TestAppendKeepsExistingParticles(t *testing.T) {
	store := newAntStore(t, 1000, 800)
	require.NoError(t, store.Populate(3))
	first := append([]engine.Particle(nil), store.Particles...)

	require.NoError(t, store.Append(5, engine.SpawnOffscreen))

	require.Equal(t, 8, store.Len())
	assert.Equal(t, first, store.Particles[:3])
	for i, p := range store.Particles[3:] {
		assert.False(t, store.Bounds().Contains(p.Pos), "new particle %d at %v", i, p.Pos)
		assert.Equal(t, 3+i, p.ID)
	}
}

func TestAppendInsideUsesFactoryPlacement(t *testing.T) {
	store := newAntStore(t, 1000, 800)

	require.NoError(t, store.Append(20, engine.SpawnInside))

	for _, p := range store.Particles {
		assert.GreaterOrEqual(t, p.Pos.X, 700.0)
		assert.LessOrEqual(t, p.Pos.X, 950.0)
		assert.GreaterOrEqual(t, p.Pos.Y, 160.0)
		assert.LessOrEqual(t, p.Pos.Y, 640.0)
		assert.Less(t, p.Vel.X, 0.0)
		assert.Equal(t, engine.KindSprite, p.Kind)
	}
}

func TestStoreGrowsMonotonically(t *testing.T) {
	store := newAntStore(t, 1000, 800)
	sizes := []int{5, 8, 10, 12}

	last := 0
	for _, n := range sizes {
		require.NoError(t, store.Append(n, engine.SpawnOffscreen))
		assert.Equal(t, last+n, store.Len())
		last = store.Len()
	}
}

func TestAppendOnEmptySurfaceDefers(t *testing.T) {
	store := engine.NewStore(engine.NewAntFactory(rand.New(rand.NewSource(1))), rand.New(rand.NewSource(1)))

	err := store.Append(4, engine.SpawnOffscreen)
	require.ErrorIs(t, err, engine.ErrEmptySurface)
	assert.Zero(t, store.Len())
	assert.Equal(t, 4, store.Pending())

	// a zero-height resize still defers
	_, err = store.Resize(engine.Bounds{W: 500})
	require.NoError(t, err)
	assert.Equal(t, 4, store.Pending())

	old, err := store.Resize(engine.Bounds{W: 500, H: 400})
	require.NoError(t, err)
	assert.Equal(t, engine.Bounds{W: 500}, old)
	assert.Zero(t, store.Pending())
	assert.Equal(t, 4, store.Len())
}

func TestResetRestartsNumbering(t *testing.T) {
	store := newAntStore(t, 1000, 800)
	require.NoError(t, store.Append(3, engine.SpawnInside))
	store.Stacked = 2

	store.Reset()

	assert.Zero(t, store.Len())
	assert.Zero(t, store.Stacked)
	require.NoError(t, store.Append(1, engine.SpawnInside))
	assert.Equal(t, 0, store.Particles[0].ID)
}

func TestIntegratorSkipsHeldParticles(t *testing.T) {
	store := newAntStore(t, 1000, 800)
	require.NoError(t, store.Append(2, engine.SpawnInside))
	store.Particles[0].Held = true
	held := store.Particles[0].Pos
	moving := store.Particles[1].Pos

	in := engine.NewIntegrator(engine.Orbit{}, engine.Drift{Boundary: engine.Wrap{}}, rand.New(rand.NewSource(1)))
	in.Step(store, engine.ModeActive)

	assert.Equal(t, held, store.Particles[0].Pos)
	assert.NotEqual(t, moving, store.Particles[1].Pos)
}

func TestIntegratorIdleOnEmptySurface(t *testing.T) {
	store := newAntStore(t, 1000, 800)
	require.NoError(t, store.Append(1, engine.SpawnInside))
	_, err := store.Resize(engine.Bounds{})
	require.NoError(t, err)
	pos := store.Particles[0].Pos

	in := engine.NewIntegrator(nil, engine.Drift{}, rand.New(rand.NewSource(1)))
	in.Step(store, engine.ModeActive)
	in.Step(store, engine.ModeNeutral)

	assert.Equal(t, pos, store.Particles[0].Pos)
}
