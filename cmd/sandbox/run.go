package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var (
	flagTicks    int
	flagNoRecord bool
	flagFrame    bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Simulate a scenario without a viewer",
	Long: `Load a scenario and step it for a fixed number of ticks with no input,
then log a summary and record the run.

The run stops early if the player dies.

Examples:
  sandbox run simple
  sandbox run hive --ticks 5000 --seed 42
  sandbox run meadow --frame --no-record`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 1000, "Number of ticks to simulate")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the run to the database")
	runCmd.Flags().BoolVar(&flagFrame, "frame", false, "Print the final frame")
}

func runRun(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown scenario %q, run 'sandbox list' to see available scenarios", id)
	}
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}

	session, err := sandbox.New(id, worldCfg, sandbox.WithLogger(logger))
	if err != nil {
		return err
	}
	cfg := runtimeConfig(80, 24)
	if err := session.Reset(cfg); err != nil {
		return err
	}
	logger.Info("simulating", "scenario", id, "seed", cfg.Seed, "ticks", flagTicks, "dt", cfg.DT())

	idle := core.NewInputFrame()
	for i := 0; i < flagTicks; i++ {
		st := session.Step(idle).State
		if st.Dead {
			break
		}
		if (i+1)%500 == 0 {
			logger.Debug("progress", "tick", st.Tick, "health", st.Health, "mobs", len(session.World().Mobs()))
		}
	}

	stats := session.Stats()
	st := session.State()
	logger.Info("run finished",
		"scenario", id,
		"ticks", stats.Ticks,
		"died", st.Dead,
		"health", st.Health,
		"entities", stats.Entities,
		"contacts", stats.Contacts,
		"handled", stats.Handled,
		"mobs_killed", stats.MobsKilled,
		"items_collected", stats.ItemsCollected,
		"blocks_mined", stats.BlocksMined,
		"blocks_placed", stats.BlocksPlaced,
		"removed", stats.Removed,
	)

	if flagFrame {
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		session.Render(screen)
		fmt.Println(screen.String())
	}

	if flagNoRecord {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, run not recorded", "error", err)
		return nil
	}
	defer store.Close()

	runID, err := store.SaveRun(session.Record())
	if err != nil {
		return err
	}
	logger.Info("run recorded", "id", runID)
	return nil
}
