package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"swarmfield/scene"
)

// Config holds the window and page settings
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int `mapstructure:"width" yaml:"width"`

	// ScreenHeight is the window height in pixels
	ScreenHeight int `mapstructure:"height" yaml:"height"`

	Title string `mapstructure:"title" yaml:"title"`

	// Debug starts with the overlay visible (toggle with F1)
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// LogLevel is a zap level name
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// WheelStep is the scroll distance of one wheel notch in pixels
	WheelStep float64 `mapstructure:"wheel_step" yaml:"wheel_step"`

	// KeyScrollSpeed is how fast the arrow keys scroll in pixels per second
	KeyScrollSpeed float64 `mapstructure:"key_scroll_speed" yaml:"key_scroll_speed"`

	Profile ProfileConfig `mapstructure:"profile" yaml:"profile"`

	Page scene.Config `mapstructure:"page" yaml:"page"`
}

// ProfileConfig controls capture on frame rate drops
type ProfileConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir"`

	// MinFPS below which a capture starts
	MinFPS float64 `mapstructure:"min_fps" yaml:"min_fps"`
}

// Default returns a default configuration
func Default() Config {
	return Config{
		ScreenWidth:    1280,
		ScreenHeight:   800,
		Title:          "Swarmfield",
		LogLevel:       "info",
		WheelStep:      60,
		KeyScrollSpeed: 900,
		Profile: ProfileConfig{
			Dir:    "profiles",
			MinFPS: 55,
		},
		Page: scene.DefaultConfig(),
	}
}

// Validate rejects settings the window cannot start with
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.WheelStep < 0 || c.KeyScrollSpeed < 0 {
		return errors.New("scroll speeds must not be negative")
	}
	return nil
}

// Load reads a YAML file over the defaults. An empty path or a missing
// file yields the defaults; SWARMFIELD_* variables override either.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("SWARMFIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("width")
	_ = v.BindEnv("height")
	_ = v.BindEnv("debug")
	_ = v.BindEnv("log_level")
	_ = v.BindEnv("page.seed")
	_ = v.BindEnv("page.ants.sprite_url")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func Save(cfg Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the configuration as YAML
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
