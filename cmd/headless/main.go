package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"swarmfield/internal/cli"
	"swarmfield/internal/headless"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		opts   cli.Options
		frames int
		fps    float64
		scroll string
	)

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the page without a window and print what each layer drew",
		Long: `Steps every scene at a fixed frame rate, drawing visible layers onto
recording surfaces. --scroll takes frame=offset cues, for example
--scroll 60=50,300=2800 scrolls past the hero at one second and to the ants
at five. A cue may name a step instead of an offset: settle, exit, return or
swarm:count, as in --scroll 300=2800,360=swarm:20.`,
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

			cues, err := headless.ParseCues(scroll)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report, err := headless.Run(ctx, cfg, headless.Options{Frames: frames, FPS: fps, Cues: cues}, logger)
			if err != nil {
				logger.Error("headless run failed", zap.Error(err))
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(report)
		},
	}
	opts.Bind(cmd)
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to run")
	cmd.Flags().Float64Var(&fps, "fps", 60, "simulated frame rate")
	cmd.Flags().StringVar(&scroll, "scroll", "", "cues as frame=offset or frame=step pairs")
	cmd.AddCommand(cli.NewConfigCommand(&opts))
	return cmd
}
