// Package cli holds the flags and subcommands shared by the window and the
// headless runner
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swarmfield/internal/config"
	"swarmfield/internal/logging"
)

// Options are the persistent flags every command accepts
type Options struct {
	ConfigPath string
	Scenes     []string
	Debug      bool
	Width      int
	Height     int
	LogLevel   string
	Seed       int64
	SpriteURL  string
}

// Bind registers the flags on cmd and its children
func (o *Options) Bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigPath, "config", "", "config file (YAML)")
	flags.StringSliceVar(&o.Scenes, "scene", nil, "scenes to run, bottom to top (default all)")
	flags.BoolVar(&o.Debug, "debug", false, "show the debug overlay and log at debug level")
	flags.IntVar(&o.Width, "width", 0, "window width in pixels")
	flags.IntVar(&o.Height, "height", 0, "window height in pixels")
	flags.StringVar(&o.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.Int64Var(&o.Seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&o.SpriteURL, "sprite-url", "", "fetch the ant sprite from this URL")
}

// Load reads the config file and applies the flags that were set on cmd
func (o *Options) Load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("scene") {
		cfg.Page.Scenes = o.Scenes
	}
	if flags.Changed("debug") {
		cfg.Debug = o.Debug
		if o.Debug {
			cfg.LogLevel = "debug"
		}
	}
	if flags.Changed("width") {
		cfg.ScreenWidth = o.Width
	}
	if flags.Changed("height") {
		cfg.ScreenHeight = o.Height
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if flags.Changed("seed") {
		cfg.Page.Seed = o.Seed
	}
	if flags.Changed("sprite-url") {
		cfg.Page.Ants.SpriteURL = o.SpriteURL
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// Logger builds the process logger for a loaded config
func (o *Options) Logger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.Debug)
}

// NewConfigCommand returns the "config" command group
func NewConfigCommand(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.Load(cmd)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
