// sandbox is a 2D physics sandbox that runs in the terminal.
//
// Usage:
//
//	sandbox list                 - List available scenarios
//	sandbox run <scenario>       - Simulate a scenario headless and record the run
//	sandbox watch <scenario>     - Watch and play a scenario in the terminal
//	sandbox serve                - Start SSH server for remote viewing
//	sandbox runs                 - Show recorded runs
//
// Global flags:
//
//	--tick <duration>   - Simulation step (default: physics.tick_ms from config)
//	--seed <value>      - Set RNG seed for reproducible worlds
//	--db <path>         - Set database path (default: ~/.sandbox/runs.db)
//	--config <path>     - World config YAML
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"

	// Register the built-in scenarios
	_ "github.com/vovakirdan/tui-sandbox/internal/scenarios"
)

var (
	// Global flags
	flagTick     time.Duration
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// Set by the root pre-run
	worldCfg config.WorldConfig
	logger   *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "TUI Sandbox - a physics world in your terminal",
	Long: `TUI Sandbox simulates a small 2D world of blocks, items, mobs and a
player on a Chipmunk physics space, and shows it in your terminal.

Available commands:
  list     - Show all scenarios
  run      - Simulate a scenario headless
  watch    - Watch and play a scenario
  serve    - Start SSH server for remote viewing
  runs     - View recorded runs

Examples:
  sandbox list
  sandbox run simple --ticks 2000 --seed 7
  sandbox watch hive
  sandbox serve --ssh :2222
  sandbox runs --scenario hive`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Simulation step (0 = physics.tick_ms from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sandbox/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to world config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// setup parses the log level and loads the world config for every command.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	worldCfg, err = config.LoadWorld(flagConfig)
	if err != nil {
		return err
	}
	if flagTick > 0 {
		worldCfg.Physics.TickMS = int(flagTick / time.Millisecond)
	}
	return worldCfg.Validate()
}

// runtimeConfig builds the session config from the flags and the world config.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: time.Duration(worldCfg.Physics.TickMS) * time.Millisecond,
		Seed:         seed,
	}
}
