package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swarmfield/game"
	"swarmfield/internal/cli"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts cli.Options

	cmd := &cobra.Command{
		Use:   "swarmfield",
		Short: "Scroll-driven particle scenes in a window",
		Long: `Opens the landing page scenes in a resizable window. Scroll with the
mouse wheel, arrow keys, PageUp/PageDown, Home and End. F1 toggles the
debug overlay, Escape quits.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Load(cmd)
			if err != nil {
				return err
			}
			logger, err := opts.Logger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			g, err := game.NewGame(cfg, logger)
			if err != nil {
				return err
			}
			defer g.Close()

			ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
			ebiten.SetWindowTitle(cfg.Title)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

			logger.Info("starting", zap.Int("width", cfg.ScreenWidth), zap.Int("height", cfg.ScreenHeight), zap.Strings("scenes", cfg.Page.Scenes))
			if err := ebiten.RunGame(g); err != nil {
				return fmt.Errorf("run window: %w", err)
			}
			return nil
		},
	}
	opts.Bind(cmd)
	cmd.AddCommand(cli.NewConfigCommand(&opts))
	return cmd
}
