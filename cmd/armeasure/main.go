package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/philipparndt/armeasure/internal/config"
	"github.com/philipparndt/armeasure/internal/logging"
	"github.com/philipparndt/armeasure/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configFile string
	cfg        *config.Config
	logger     = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "armeasure",
	Short: "Measure distances in 3D scenes the way an AR ruler does",
	Long: `armeasure simulates an augmented reality tape measure on a scanned scene.
Aim the crosshair at a surface and tap twice: the first tap places the start
point, the second completes the measurement and shows the distance in cm.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		l, err := logging.New(c.LogLevel, os.Stderr)
		if err != nil {
			return err
		}
		cfg, logger = c, l
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("units", "mm", "units of the scene file (mm, cm or m)")
	flags.Bool("watch", true, "reload the scene when the file changes")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
