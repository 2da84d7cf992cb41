package scene

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"swarmfield/engine"
)

// HeroConfig tunes the hero shapes layer
type HeroConfig struct {
	// Layout is "classic" or "extended"
	Layout string `mapstructure:"layout" yaml:"layout"`

	// Boundary is the active-mode edge policy: "wrap", "fall" or "bounce"
	Boundary string `mapstructure:"boundary" yaml:"boundary"`

	// Connections is "fixed" (layout edges) or "proximity"
	Connections     string  `mapstructure:"connections" yaml:"connections"`
	ProximityRadius float64 `mapstructure:"proximity_radius" yaml:"proximity_radius"`

	// Transition is how long a scroll-driven mode change ignores timers (seconds)
	Transition float64 `mapstructure:"transition" yaml:"transition"`
}

// Batch is one timed ant growth step
type Batch struct {
	At    float64 `mapstructure:"at" yaml:"at"`
	Count int     `mapstructure:"count" yaml:"count"`
}

// AntConfig tunes the ant swarm layer
type AntConfig struct {
	Growth []Batch `mapstructure:"growth" yaml:"growth"`

	// Swarm is a last batch that crawls in from past the edges; a zero
	// count skips it
	Swarm Batch `mapstructure:"swarm" yaml:"swarm"`

	// SpriteURL is fetched by the host; empty uses the bundled ant
	SpriteURL string `mapstructure:"sprite_url" yaml:"sprite_url"`
}

// Config selects and tunes the page layers
type Config struct {
	// Scenes lists the layers to run, bottom to top; empty runs all of them
	Scenes []string `mapstructure:"scenes" yaml:"scenes"`

	// Seed fixes the random sources; 0 seeds from the clock
	Seed int64 `mapstructure:"seed" yaml:"seed"`

	Sections []engine.Section `mapstructure:"sections" yaml:"sections"`

	Hero HeroConfig `mapstructure:"hero" yaml:"hero"`
	Ants AntConfig  `mapstructure:"ants" yaml:"ants"`
}

// Scene names accepted in Config.Scenes
const (
	NameHero       = "hero"
	NameBars       = "bars"
	NameHighlights = "highlights"
	NameAnts       = "ants"
	NamePills      = "pills"
)

// AllScenes is the default stacking order
var AllScenes = []string{NameHero, NameBars, NameHighlights, NameAnts, NamePills}

// DefaultConfig returns the page as it ships
func DefaultConfig() Config {
	return Config{
		Scenes: append([]string(nil), AllScenes...),
		Hero: HeroConfig{
			Layout:          engine.ExtendedNetwork.Name,
			Boundary:        "fall",
			Connections:     "fixed",
			ProximityRadius: 220,
			Transition:      1.5,
		},
		Ants: AntConfig{
			Growth: []Batch{
				{At: 1, Count: 5},
				{At: 2, Count: 8},
				{At: 3, Count: 10},
				{At: 4, Count: 12},
			},
			Swarm: Batch{At: 5, Count: 6},
		},
	}
}

// Build creates the configured scenes in stacking order
func Build(cfg Config, logger *zap.Logger) ([]Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	names := cfg.Scenes
	if len(names) == 0 {
		names = AllScenes
	}

	scenes := make([]Scene, 0, len(names))
	for i, name := range names {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		switch name {
		case NameHero:
			h, err := NewHero(cfg.Hero, rng, logger)
			if err != nil {
				return nil, err
			}
			scenes = append(scenes, h)
		case NameBars:
			scenes = append(scenes, NewBars(logger))
		case NameHighlights:
			scenes = append(scenes, NewHighlights(logger))
		case NameAnts:
			scenes = append(scenes, NewAnts(cfg.Ants, rng, logger))
		case NamePills:
			scenes = append(scenes, NewPills(logger))
		default:
			return nil, fmt.Errorf("unknown scene %q", name)
		}
	}
	return scenes, nil
}
