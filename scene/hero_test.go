package scene

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swarmfield/engine"
	"swarmfield/engine/recorder"
)

func newTestHero(t *testing.T) *Hero {
	t.Helper()
	h, err := NewHero(DefaultConfig().Hero, rand.New(rand.NewSource(3)), nil)
	require.NoError(t, err)
	return h
}

func TestHeroStartsAsGreyNetwork(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)

	require.Equal(t, len(engine.ExtendedNetwork.Nodes), h.Store().Len())
	assert.Equal(t, engine.ModeNeutral, h.Mode())
	for _, p := range h.Store().Particles {
		assert.Equal(t, engine.BrandPalette.Neutral, p.Color)
		assert.Zero(t, p.Speed())
	}

	s := recorder.New(viewport.W, viewport.H)
	require.True(t, h.Draw(s))
	assert.Equal(t, len(engine.ExtendedNetwork.Edges), s.Count(recorder.OpLine))
}

func TestHeroIntroLabel(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)

	run(h, 1.4)
	label, _ := h.Headline()
	assert.Empty(t, label)

	run(h, 0.5)
	label, alpha := h.Headline()
	assert.Equal(t, LabelNeutral, label)
	assert.InDelta(t, 1, alpha, 1e-9)
}

func TestHeroScrollTurnsShapesColourful(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)
	run(h, 2)

	host.ScrollTo(pastBody)
	// the headline fades out before anything switches
	run(h, 0.5)
	assert.Equal(t, engine.ModeNeutral, h.Mode())

	run(h, 2)
	require.Equal(t, engine.ModeActive, h.Mode())
	for i, p := range h.Store().Particles {
		assert.InDelta(t, p.Original.R, p.Color.R, 1e-9, "particle %d", i)
		assert.InDelta(t, p.Original.G, p.Color.G, 1e-9, "particle %d", i)
		assert.InDelta(t, p.Original.B, p.Color.B, 1e-9, "particle %d", i)
		assert.NotEqual(t, engine.BrandPalette.Neutral, p.Color)
		assert.Positive(t, p.Speed(), "particle %d", i)
	}

	label, alpha := h.Headline()
	assert.Equal(t, LabelActive, label)
	assert.InDelta(t, 1, alpha, 1e-9)

	// connections are gone in active mode
	s := recorder.New(viewport.W, viewport.H)
	require.True(t, h.Draw(s))
	assert.Zero(t, s.Count(recorder.OpLine))
}

func TestHeroDirectModeRequest(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)

	require.True(t, h.Controller().Request(engine.ModeActive, "", engine.SourceScroll))
	run(h, 1.5)

	for _, p := range h.Store().Particles {
		assert.InDelta(t, p.Original.R, p.Color.R, 1e-9)
		assert.Positive(t, p.Speed())
	}
}

func TestHeroRepeatedSwitchesDoNotPileUp(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)
	n := h.Store().Len()
	ctl := h.Controller()

	ctl.Request(engine.ModeActive, "", engine.SourceScroll)
	tweens := h.anim.Active()
	assert.False(t, ctl.Request(engine.ModeActive, "", engine.SourceScroll))
	assert.Equal(t, tweens, h.anim.Active())

	ctl.Request(engine.ModeNeutral, "", engine.SourceScroll)
	ctl.Request(engine.ModeActive, "", engine.SourceScroll)
	ctl.Request(engine.ModeNeutral, "", engine.SourceScroll)

	// one colour, velocity and position tween per shape at most
	assert.LessOrEqual(t, h.anim.Active(), 3*n)
}

func TestHeroTimerCannotUndoScroll(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)

	// scroll just before the intro label is due
	run(h, 1.2)
	host.ScrollTo(pastBody)
	run(h, 3)

	label, _ := h.Headline()
	assert.Equal(t, LabelActive, label)
	assert.Equal(t, engine.ModeActive, h.Mode())
}

func TestHeroEnterThenLeaveBackSameTick(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)
	run(h, 2)

	host.ScrollTo(pastBody)
	host.ScrollTo(0)
	run(h, 2)

	assert.Equal(t, engine.ModeNeutral, h.Mode())
	label, alpha := h.Headline()
	assert.Equal(t, LabelNeutral, label)
	assert.InDelta(t, 1, alpha, 1e-9)
}

func TestHeroLoseSectionGreysShapes(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)

	host.ScrollTo(pastBody)
	run(h, 1)
	require.Equal(t, engine.ModeActive, h.Mode())

	host.ScrollTo(pastLose)
	assert.Equal(t, engine.ModeNeutral, h.Mode())
	run(h, 2)
	assert.InDelta(t, dimAlpha, h.Alpha(), 1e-9)
	for _, p := range h.Store().Particles {
		assert.False(t, p.Held)
		assert.InDelta(t, p.FloatRadius, p.Pos.Sub(p.Anchor).Len(), 1e-6)
	}

	host.ScrollTo(pastContent)
	assert.Equal(t, engine.ModeActive, h.Mode())

	host.ScrollTo(0)
	run(h, 2)
	assert.Equal(t, engine.ModeNeutral, h.Mode())
	assert.InDelta(t, 1, h.Alpha(), 1e-9)
}

func TestHeroJumpPastLoseEndsNeutral(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)

	host.ScrollTo(pastLose)
	run(h, 3)

	assert.Equal(t, engine.ModeNeutral, h.Mode())
	_, alpha := h.Headline()
	assert.InDelta(t, 1, alpha, 1e-9)
}

func TestHeroSettleStaysInPlace(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)
	h.Controller().Request(engine.ModeActive, "", engine.SourceScroll)
	run(h, 3)

	h.Settle()
	require.Equal(t, engine.ModeNeutral, h.Mode())
	before := make([]engine.Vec2, h.Store().Len())
	for i, p := range h.Store().Particles {
		before[i] = p.Pos
	}
	run(h, 2)

	for i, p := range h.Store().Particles {
		assert.False(t, p.Held)
		assert.LessOrEqual(t, p.Pos.Sub(before[i]).Len(), 2*p.FloatRadius+1e-9)
		assert.InDelta(t, engine.BrandPalette.Neutral.R, p.Color.R, 1e-9)
	}
}

func TestHeroExitLeavesScreen(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)

	h.Exit()
	run(h, exitDuration+float64(h.Store().Len())*exitStagger+0.2)

	for i, p := range h.Store().Particles {
		assert.True(t, p.Held, "particle %d", i)
		assert.False(t, viewport.Contains(p.Pos), "particle %d at %v", i, p.Pos)
	}
}

func TestHeroDefersUntilSized(t *testing.T) {
	h := newTestHero(t)
	host := engine.NewScrollHost(NewPage(viewport, nil), nil)
	require.NoError(t, h.Mount(host))
	assert.Zero(t, h.Store().Len())

	empty := recorder.New(0, 0)
	assert.False(t, h.Draw(empty))
	assert.False(t, h.Draw(nil))
	h.Update(frame)

	require.NoError(t, h.Resize(viewport))
	assert.Equal(t, len(engine.ExtendedNetwork.Nodes), h.Store().Len())
}

func TestHeroResizeScalesNetwork(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)
	anchor := h.Store().Particles[1].Anchor

	require.NoError(t, h.Resize(engine.Bounds{W: 2000, H: 400}))

	got := h.Store().Particles[1].Anchor
	assert.InDelta(t, anchor.X*2, got.X, 1e-9)
	assert.InDelta(t, anchor.Y/2, got.Y, 1e-9)
}

func TestHeroResizeThroughZeroArea(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)
	anchors := make([]engine.Vec2, h.Store().Len())
	for i, p := range h.Store().Particles {
		anchors[i] = p.Anchor
	}

	// a minimised window reports no area; the shapes stay put
	require.NoError(t, h.Resize(engine.Bounds{}))
	assert.Equal(t, anchors[2], h.Store().Particles[2].Anchor)

	half := engine.Bounds{W: 500, H: 400}
	require.NoError(t, h.Resize(half))
	for i, p := range h.Store().Particles {
		assert.InDelta(t, anchors[i].X/2, p.Anchor.X, 1e-9, "particle %d", i)
		assert.InDelta(t, anchors[i].Y/2, p.Anchor.Y, 1e-9, "particle %d", i)
		assert.True(t, half.Contains(p.Anchor), "particle %d at %v", i, p.Anchor)
	}
}

func TestHeroContentKeepsShapesWandering(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)
	velocity := func(i int) engine.TweenKey {
		return engine.TweenKey{Target: h.Store(), Index: i, Prop: engine.PropVelocity}
	}

	host.ScrollTo(pastBody)
	run(h, 2)
	require.Equal(t, engine.ModeActive, h.Mode())
	for i := range h.Store().Particles {
		h.anim.Cancel(velocity(i))
	}

	host.ScrollTo(pastContent)
	for i := range h.Store().Particles {
		assert.True(t, h.anim.Running(velocity(i)), "particle %d", i)
	}
	run(h, 2)
	assert.InDelta(t, dimAlpha, h.Alpha(), 1e-9)
}

func TestHeroContentLeavesNeutralShapesAlone(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)

	// the morph is still fading the headline when content is reached
	host.ScrollTo(pastContent)
	require.Equal(t, engine.ModeNeutral, h.Mode())
	for i := range h.Store().Particles {
		key := engine.TweenKey{Target: h.Store(), Index: i, Prop: engine.PropVelocity}
		assert.False(t, h.anim.Running(key), "particle %d", i)
	}
}

func TestHeroConnectSectionSendsShapesAway(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)

	host.ScrollTo(pastConnect)
	run(h, exitDuration+float64(h.Store().Len())*exitStagger+0.2)
	for i, p := range h.Store().Particles {
		assert.True(t, p.Held, "particle %d", i)
		assert.False(t, viewport.Contains(p.Pos), "particle %d at %v", i, p.Pos)
	}

	// scrolling back up brings them home onto the network
	host.ScrollTo(pastPills)
	run(h, 2)
	require.Equal(t, engine.ModeNeutral, h.Mode())
	for i, p := range h.Store().Particles {
		assert.False(t, p.Held, "particle %d", i)
		assert.InDelta(t, p.FloatRadius, p.Pos.Sub(p.Anchor).Len(), 1e-6, "particle %d", i)
	}
}

func TestHeroReturnWhileActiveReleasesShapes(t *testing.T) {
	h := newTestHero(t)
	mount(t, h)
	h.Controller().Request(engine.ModeActive, "", engine.SourceScroll)
	run(h, 1)

	h.Exit()
	run(h, 0.5)
	h.Return()

	for i, p := range h.Store().Particles {
		assert.False(t, p.Held, "particle %d", i)
		key := engine.TweenKey{Target: h.Store(), Index: i, Prop: engine.PropPosition}
		assert.False(t, h.anim.Running(key), "particle %d", i)
	}
	assert.Equal(t, engine.ModeActive, h.Mode())
}

func TestHeroCloseCancelsEverything(t *testing.T) {
	h := newTestHero(t)
	host := mount(t, h)
	host.ScrollTo(pastBody)
	require.Positive(t, h.sched.Pending())

	h.Close()

	assert.Zero(t, h.sched.Pending())
	assert.Zero(t, h.anim.Active())
	assert.Zero(t, host.Anchors())

	host.ScrollTo(0)
	run(h, 3)
	assert.Equal(t, engine.ModeNeutral, h.Mode())
	label, _ := h.Headline()
	assert.Empty(t, label)
}
