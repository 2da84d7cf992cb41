// Package headless runs the page without a window, drawing every visible
// layer onto recording surfaces, and reports what was drawn
package headless

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"swarmfield/engine"
	"swarmfield/engine/recorder"
	"swarmfield/internal/assets"
	"swarmfield/internal/config"
	"swarmfield/scene"
)

// Cue acts before frame Frame is stepped: it either scrolls the page to
// Offset or, when Action is set, fires that stage cue with Count
type Cue struct {
	Frame  int
	Offset float64
	Action scene.Cue
	Count  int
}

// Options control a run
type Options struct {
	Frames int
	FPS    float64
	Cues   []Cue
}

// LayerReport sums what one scene drew
type LayerReport struct {
	Name   string         `yaml:"name"`
	Drawn  int            `yaml:"drawn"`
	Hidden int            `yaml:"hidden"`
	Calls  map[string]int `yaml:"calls"`
}

// Report is the outcome of a run
type Report struct {
	Frames  int           `yaml:"frames"`
	Elapsed float64       `yaml:"elapsed"`
	Scroll  float64       `yaml:"scroll"`
	Mode    string        `yaml:"mode,omitempty"`
	Label   string        `yaml:"label,omitempty"`
	Ants    int           `yaml:"ants,omitempty"`
	Held    int           `yaml:"held,omitempty"`
	Sprite  bool          `yaml:"sprite"`
	Layers  []LayerReport `yaml:"layers"`
}

// ParseCues reads comma separated cues. Each is "frame=offset" to scroll, or
// "frame=settle", "frame=exit", "frame=return" or "frame=swarm:count".
func ParseCues(s string) ([]Cue, error) {
	var cues []Cue
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		frame, offset, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("scroll cue %q: want frame=offset", part)
		}
		f, err := strconv.Atoi(strings.TrimSpace(frame))
		if err != nil || f < 0 {
			return nil, fmt.Errorf("scroll cue %q: bad frame", part)
		}
		cue, err := parseAction(strings.TrimSpace(offset))
		if err != nil {
			return nil, fmt.Errorf("scroll cue %q: %w", part, err)
		}
		cue.Frame = f
		cues = append(cues, cue)
	}
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].Frame < cues[j].Frame })
	return cues, nil
}

func parseAction(s string) (Cue, error) {
	name, count, hasCount := strings.Cut(s, ":")
	switch c := scene.Cue(name); c {
	case scene.CueSettle, scene.CueExit, scene.CueReturn:
		if hasCount {
			return Cue{}, fmt.Errorf("%s takes no count", c)
		}
		return Cue{Action: c}, nil
	case scene.CueSwarm:
		n, err := strconv.Atoi(count)
		if !hasCount || err != nil || n <= 0 {
			return Cue{}, errors.New("want swarm:count with a positive count")
		}
		return Cue{Action: c, Count: n}, nil
	}
	o, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Cue{}, errors.New("bad offset")
	}
	return Cue{Offset: o}, nil
}

// Run steps the page for opts.Frames frames at a fixed rate
func Run(ctx context.Context, cfg config.Config, opts Options, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Frames < 0 || opts.FPS <= 0 {
		return Report{}, errors.New("frames must not be negative and fps must be positive")
	}

	viewport := engine.Bounds{W: float64(cfg.ScreenWidth), H: float64(cfg.ScreenHeight)}
	stage, err := scene.NewStage(cfg.Page, viewport, logger.Named("scene"))
	if err != nil {
		return Report{}, err
	}
	defer stage.Close()

	sprite := false
	if stage.Ants() != nil {
		sprite = loadSprite(ctx, cfg.Page.Ants.SpriteURL, logger)
	}

	scenes := stage.Scenes()
	surfaces := make([]*recorder.Surface, len(scenes))
	layers := make([]LayerReport, len(scenes))
	for i, s := range scenes {
		surfaces[i] = recorder.New(viewport.W, viewport.H)
		surfaces[i].Sprites[scene.AntSprite] = sprite
		layers[i] = LayerReport{Name: s.Name(), Calls: map[string]int{}}
	}

	dt := 1 / opts.FPS
	cues := opts.Cues
	for f := 0; f < opts.Frames; f++ {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		var scroll float64
		for len(cues) > 0 && cues[0].Frame <= f {
			c := cues[0]
			cues = cues[1:]
			if c.Action == "" {
				scroll = c.Offset - stage.Host().Position()
				continue
			}
			if err := stage.Trigger(c.Action, c.Count); err != nil {
				logger.Warn("cue skipped", zap.Int("frame", c.Frame), zap.Error(err))
			}
		}
		stage.Step(dt, scroll)

		for i, s := range scenes {
			if _, visible := stage.Offset(s); !visible {
				layers[i].Hidden++
				continue
			}
			rec := surfaces[i]
			rec.Reset()
			if !s.Draw(rec) {
				continue
			}
			layers[i].Drawn++
			for _, c := range rec.Calls {
				layers[i].Calls[string(c.Op)]++
			}
		}
	}

	report := Report{
		Frames:  stage.Frames(),
		Elapsed: stage.Elapsed(),
		Scroll:  stage.Host().Position(),
		Sprite:  sprite,
		Layers:  layers,
	}
	if hero := stage.Hero(); hero != nil {
		report.Mode = hero.Mode().String()
		report.Label, _ = hero.Headline()
		for _, p := range hero.Store().Particles {
			if p.Held {
				report.Held++
			}
		}
	}
	if ants := stage.Ants(); ants != nil {
		report.Ants = ants.Count()
	}
	return report, nil
}

func loadSprite(ctx context.Context, url string, logger *zap.Logger) bool {
	loader := assets.NewLoader(logger)
	loader.Load(ctx, scene.AntSprite, url)
	select {
	case r := <-loader.Results():
		return r.Err == nil
	case <-ctx.Done():
		return false
	}
}
