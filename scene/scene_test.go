package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmfield/engine"
)

const frame = 1.0 / 60

var viewport = engine.Bounds{W: 1000, H: 800}

// Offsets on the default page at 1000x800:
//
//	content-section 720..1520, bars-section 1520..2320, lose-section 2320..3120,
//	ant-section 3120..3920, protection-section 3920..4720, connect-section 4720..5520
const (
	pastBody    = 50.0
	pastContent = 400.0
	pastLose    = 2200.0
	pastAnts    = 2800.0
	pastPills   = 3600.0
	pastConnect = 4720.0
)

func mount(t *testing.T, s Scene) *engine.ScrollHost {
	t.Helper()
	host := engine.NewScrollHost(NewPage(viewport, nil), nil)
	require.NoError(t, s.Resize(viewport))
	require.NoError(t, s.Mount(host))
	return host
}

// run advances a scene frame by frame
func run(s Scene, seconds float64) {
	frames := int(math.Round(seconds / frame))
	for i := 0; i < frames; i++ {
		s.Update(frame)
	}
}

func TestBuildDefaultScenes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1

	scenes, err := Build(cfg, nil)
	require.NoError(t, err)

	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.Name()
	}
	assert.Equal(t, AllScenes, names)
}

func TestBuildRejectsUnknownScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenes = []string{"hero", "fireworks"}

	_, err := Build(cfg, nil)
	assert.ErrorContains(t, err, "fireworks")

	cfg = DefaultConfig()
	cfg.Hero.Layout = "hexagon"
	_, err = Build(cfg, nil)
	assert.Error(t, err)
}

func TestMountTwiceFails(t *testing.T) {
	p := NewPills(nil)
	host := mount(t, p)

	assert.Error(t, p.Mount(host))
}

func TestSceneCallbacksStopAfterClose(t *testing.T) {
	p := NewPills(nil)
	host := mount(t, p)
	require.Equal(t, 1, host.Anchors())

	p.Close()
	host.ScrollTo(pastPills)
	run(p, 1)

	assert.Zero(t, host.Anchors())
	assert.False(t, p.Revealed())

	// closing twice is harmless
	p.Close()
}

func TestGuardDropsQueuedCallbacks(t *testing.T) {
	b := newBase("test", nil)
	calls := 0
	fn := b.guard(func() { calls++ })

	fn()
	b.closed = true
	fn()

	assert.Equal(t, 1, calls)
	assert.Nil(t, b.guard(nil))
}

func TestPillsRevealOneByOne(t *testing.T) {
	p := NewPills(nil)
	host := mount(t, p)
	for _, c := range p.Cards() {
		assert.Zero(t, c.Alpha)
		assert.Equal(t, pillRise, c.Offset)
	}

	host.ScrollTo(pastPills)
	run(p, 1)

	cards := p.Cards()
	assert.InDelta(t, 0, cards[0].Offset, 1e-9)
	assert.InDelta(t, 1, cards[0].Alpha, 1e-9)
	assert.Equal(t, pillRise, cards[1].Offset)

	run(p, 6)
	for _, c := range p.Cards() {
		assert.InDelta(t, 0, c.Offset, 1e-9)
		assert.InDelta(t, 1, c.Alpha, 1e-9)
	}
}

func TestHighlightLoop(t *testing.T) {
	hl := NewHighlights(nil)
	mount(t, hl)

	run(hl, 1.9)
	assert.Zero(t, hl.Cycles())

	run(hl, 2.3) // 4.2s: every sweep has finished
	assert.Equal(t, 1, hl.Cycles())
	for i, s := range hl.Scales() {
		assert.InDelta(t, 1, s, 1e-9, "sweep %d", i)
	}

	run(hl, 2) // 6.2s: held for two seconds, then cleared
	for _, s := range hl.Scales() {
		assert.Zero(t, s)
	}
	assert.Equal(t, 1, hl.Cycles())

	run(hl, 0.5) // 6.7s: restarted
	assert.Equal(t, 2, hl.Cycles())
}

func TestBarsFollowScrubbedScroll(t *testing.T) {
	b := NewBars(nil)
	host := mount(t, b)
	require.Len(t, b.Items(), 6)

	// halfway between content "center bottom" (320) and "bottom top" (1520)
	host.ScrollTo(920)
	assert.Zero(t, b.Progress())

	// the host owns the scrub smoothing
	host.Advance(0.5)
	assert.InDelta(t, 0.25, b.Progress(), 1e-9)

	host.Advance(5)
	assert.InDelta(t, 0.5, b.Progress(), 1e-9)
	items := b.Items()
	assert.Positive(t, items[0].Width)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i].Width, items[i-1].Width)
	}

	// a resize keeps the widths in proportion
	require.NoError(t, b.Resize(engine.Bounds{W: 500, H: 600}))
	assert.InDelta(t, 100, b.Items()[1].Height, 1e-9)
	assert.InDelta(t, 500*b.Items()[0].Progress, b.Items()[0].Width, 1e-9)
}

func newTestAnts() *Ants {
	return NewAnts(DefaultConfig().Ants, rand.New(rand.NewSource(5)), nil)
}

func TestAntsGrowOnSchedule(t *testing.T) {
	a := newTestAnts()
	host := mount(t, a)
	require.Equal(t, 1, a.Count())

	host.ScrollTo(pastAnts)
	assert.Equal(t, 1, a.Count())

	// four batches inside, then the swarm from past the edges
	want := []int{6, 14, 24, 36, 42}
	for _, n := range want {
		run(a, 1)
		assert.Equal(t, n, a.Count())
	}
	run(a, 5)
	assert.Equal(t, 42, a.Count())
}

func TestAntsResetOnLeaveBack(t *testing.T) {
	a := newTestAnts()
	host := mount(t, a)

	host.ScrollTo(pastAnts)
	run(a, 2.5)
	require.Equal(t, 14, a.Count())

	host.ScrollTo(0)
	assert.Equal(t, 1, a.Count())

	// the cancelled batches never arrive
	run(a, 3)
	assert.Equal(t, 1, a.Count())
}

func TestAntsSwarmFromOffscreen(t *testing.T) {
	a := newTestAnts()
	mount(t, a)

	a.Swarm(5)

	require.Equal(t, 6, a.Store().Len())
	for _, p := range a.Store().Particles[1:] {
		assert.False(t, viewport.Contains(p.Pos))
	}
}

func TestAntsSwarmStepIsOptional(t *testing.T) {
	cfg := DefaultConfig().Ants
	cfg.Swarm = Batch{}
	a := NewAnts(cfg, rand.New(rand.NewSource(5)), nil)
	host := mount(t, a)

	host.ScrollTo(pastAnts)
	run(a, 10)
	assert.Equal(t, 36, a.Count())
}

func TestAntsWaitForSurface(t *testing.T) {
	a := newTestAnts()
	host := engine.NewScrollHost(NewPage(viewport, nil), nil)
	require.NoError(t, a.Mount(host))

	assert.Zero(t, a.Store().Len())
	assert.Equal(t, 1, a.Count())

	require.NoError(t, a.Resize(viewport))
	assert.Equal(t, 1, a.Store().Len())
}

func TestAntsPileAgainstWall(t *testing.T) {
	a := newTestAnts()
	host := mount(t, a)
	host.ScrollTo(pastAnts)

	run(a, 30)

	stopped := 0
	for _, p := range a.Store().Particles {
		assert.True(t, viewport.Contains(p.Pos))
		if p.Stopped {
			stopped++
		}
	}
	assert.Equal(t, a.Store().Stacked, stopped)
	assert.Positive(t, stopped)
}
