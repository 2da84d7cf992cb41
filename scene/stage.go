package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"swarmfield/engine"
)

// Stage owns the page, its scroll host and the mounted scenes, and advances
// them in a fixed order each frame: scroll, scrub, then every scene
type Stage struct {
	page   *engine.Page
	host   *engine.ScrollHost
	scenes []Scene
	logger *zap.Logger

	frames  int
	elapsed float64
}

// NewStage builds the configured scenes, sizes them to the viewport and
// mounts them on a fresh scroll host
func NewStage(cfg Config, viewport engine.Bounds, logger *zap.Logger) (*Stage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scenes, err := Build(cfg, logger)
	if err != nil {
		return nil, err
	}
	return mountStage(scenes, cfg.Sections, viewport, logger)
}

func mountStage(scenes []Scene, sections []engine.Section, viewport engine.Bounds, logger *zap.Logger) (*Stage, error) {
	page := NewPage(viewport, sections)
	st := &Stage{
		page:   page,
		host:   engine.NewScrollHost(page, logger.Named("scroll")),
		logger: logger.Named("stage"),
	}
	for _, s := range scenes {
		if err := s.Resize(viewport); err != nil {
			s.Close()
			st.Close()
			return nil, fmt.Errorf("size %s: %w", s.Name(), err)
		}
		if err := s.Mount(st.host); err != nil {
			// the failed scene may have registered anchors or timers before it stopped
			s.Close()
			st.Close()
			return nil, fmt.Errorf("mount %s: %w", s.Name(), err)
		}
		st.scenes = append(st.scenes, s)
	}
	st.logger.Info("stage ready",
		zap.Int("scenes", len(st.scenes)),
		zap.Float64("page_height", page.Height()),
	)
	return st, nil
}

// Scenes returns the mounted scenes, bottom layer first
func (st *Stage) Scenes() []Scene { return st.scenes }

// Host returns the scroll host
func (st *Stage) Host() *engine.ScrollHost { return st.host }

// Page returns the page layout
func (st *Stage) Page() *engine.Page { return st.page }

// Viewport returns the current viewport size
func (st *Stage) Viewport() engine.Bounds { return st.page.Viewport }

// Frames returns how many steps have run
func (st *Stage) Frames() int { return st.frames }

// Elapsed returns the summed step time in seconds
func (st *Stage) Elapsed() float64 { return st.elapsed }

// Hero returns the hero scene, or nil when it is not configured
func (st *Stage) Hero() *Hero {
	for _, s := range st.scenes {
		if h, ok := s.(*Hero); ok {
			return h
		}
	}
	return nil
}

// Ants returns the ant scene, or nil when it is not configured
func (st *Stage) Ants() *Ants {
	for _, s := range st.scenes {
		if a, ok := s.(*Ants); ok {
			return a
		}
	}
	return nil
}

// Step applies a scroll delta then advances scrubbed progress and every scene by dt
func (st *Stage) Step(dt, scroll float64) {
	if scroll != 0 {
		st.host.ScrollBy(scroll)
	}
	st.host.Advance(dt)
	for _, s := range st.scenes {
		s.Update(dt)
	}
	st.frames++
	st.elapsed += dt
}

// Cue names a one-off step the window keys and the headless runner can fire
type Cue string

// Cues accepted by Trigger
const (
	CueSettle Cue = "settle"
	CueExit   Cue = "exit"
	CueReturn Cue = "return"
	CueSwarm  Cue = "swarm"
)

// ErrNoTarget is returned by Trigger when no mounted scene handles a cue
var ErrNoTarget = errors.New("no scene handles cue")

// Trigger fires a cue on the scene that owns it. n is the ant count for
// CueSwarm and ignored otherwise.
func (st *Stage) Trigger(cue Cue, n int) error {
	switch cue {
	case CueSettle, CueExit, CueReturn:
		h := st.Hero()
		if h == nil {
			return fmt.Errorf("%s: %w", cue, ErrNoTarget)
		}
		switch cue {
		case CueSettle:
			h.Settle()
		case CueExit:
			h.Exit()
		default:
			h.Return()
		}
	case CueSwarm:
		a := st.Ants()
		if a == nil {
			return fmt.Errorf("%s: %w", cue, ErrNoTarget)
		}
		if n <= 0 {
			return fmt.Errorf("swarm needs a positive count, got %d", n)
		}
		a.Swarm(n)
	default:
		return fmt.Errorf("unknown cue %q", cue)
	}
	st.logger.Debug("cue", zap.String("cue", string(cue)), zap.Int("n", n))
	return nil
}

// Resize resizes every scene and re-resolves the anchors against the new viewport
func (st *Stage) Resize(viewport engine.Bounds) error {
	if viewport == st.page.Viewport {
		return nil
	}
	var errs []error
	for _, s := range st.scenes {
		if err := s.Resize(viewport); err != nil {
			errs = append(errs, fmt.Errorf("resize %s: %w", s.Name(), err))
		}
	}
	st.page.Viewport = viewport
	if err := st.host.Refresh(); err != nil {
		errs = append(errs, err)
	}
	st.logger.Debug("resized", zap.Float64("w", viewport.W), zap.Float64("h", viewport.H))
	return errors.Join(errs...)
}

// Offset returns where a scene's layer sits on screen and whether any of it
// is visible. Layers without a section are fixed to the viewport.
func (st *Stage) Offset(s Scene) (float64, bool) {
	id := s.Section()
	if id == "" {
		return 0, true
	}
	top, _, err := st.page.Section(id)
	if err != nil {
		return 0, false
	}
	y := top - st.host.Position()
	h := st.page.Viewport.H
	return y, y < h && y+h > 0
}

// Close closes every scene and drops the remaining anchors
func (st *Stage) Close() {
	for _, s := range st.scenes {
		s.Close()
	}
	st.host.Kill()
}
