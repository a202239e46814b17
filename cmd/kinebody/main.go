// kinebody runs bodies through a tile world, headless or in a window.
//
// Usage:
//
//	kinebody sim             - Run a fixed number of ticks and print the stage
//	kinebody view            - Open the interactive sandbox window
//	kinebody runs <db>       - List runs stored in a trace database
//
// Global flags:
//
//	--config <dir>     - Load configs from a directory instead of the built-in set
//	--stage <name>     - Stage to load (default: demo)
//	--log-level <lvl>  - debug, info, warn or error (default: from physics config)
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/kinebody/internal/infrastructure/config"
)

var (
	// Global flags
	flagConfigDir string
	flagStage     string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kinebody",
	Short: "Tile world kinematics sandbox",
	Long: `kinebody moves bodies through a tile world with gravity, friction,
ladders, slopes and breakable tiles.

Examples:
  kinebody sim --ticks 600
  kinebody sim --replay replay.json --trace-db traces.db
  kinebody view --record replay.json
  kinebody runs traces.db`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Config directory (default: built-in configs)")
	rootCmd.PersistentFlags().StringVar(&flagStage, "stage", "demo", "Stage name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (default: from physics config)")

	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(runsCmd)
}

// configFS returns the directory to load configs from
func configFS() (fs.FS, string, error) {
	if flagConfigDir != "" {
		return os.DirFS(flagConfigDir), flagConfigDir, nil
	}
	sub, err := fs.Sub(embeddedConfigs, "configs")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get config subfs: %w", err)
	}
	return sub, "configs", nil
}

// loadConfig loads the game configs and the selected stage
func loadConfig(fsys fs.FS, basePath, stage string) (*config.GameConfig, *config.StageConfig, error) {
	loader := config.NewFSLoader(fsys, basePath)
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	stageCfg, err := loader.LoadStage(stage)
	if err != nil {
		return nil, nil, err
	}
	if stageCfg.Name == "" {
		stageCfg.Name = stage
	}
	return cfg, stageCfg, nil
}

// newLogger creates the process logger. An explicit level wins over the config.
func newLogger(w io.Writer, cfg *config.PhysicsConfig, level string) (*log.Logger, error) {
	if level == "" {
		level = cfg.Log.Level
	}
	if level == "" {
		level = "info"
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "kinebody",
		Level:           lvl,
	}), nil
}

// setup loads configs and creates the logger from the global flags
func setup(w io.Writer) (*config.GameConfig, *config.StageConfig, *log.Logger, error) {
	fsys, base, err := configFS()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, stageCfg, err := loadConfig(fsys, base, flagStage)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(w, cfg.Physics, flagLogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, stageCfg, logger, nil
}
