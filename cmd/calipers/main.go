package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/gocalipers/internal/app"
	"github.com/philipparndt/gocalipers/internal/config"
	"github.com/philipparndt/gocalipers/version"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "calipers [backdrop]",
	Short: "Measure real-world lengths on screen",
	Long: `calipers is a transparent measuring overlay. Press Alt+C to show it,
drag a reference interval and enter its real length, then drag across
anything else to read off its length in the same units.

An optional backdrop image is shown underneath the overlay and reloaded
whenever the file changes.`,
	Version: version.GetVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    runOverlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default .calipers.yaml in . or $HOME)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Float32("width", 1200, "window width")
	flags.Float32("height", 800, "window height")
	flags.Bool("fullscreen", false, "open the overlay window full screen")
}

// loadConfig reads the configuration for cmd and builds a stderr logger
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.NewLogger(cmd.ErrOrStderr()), nil
}

func runOverlay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var backdropPath string
	if len(args) == 1 {
		backdropPath = args[0]
	}

	return app.New(cfg, logger).Run(backdropPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
