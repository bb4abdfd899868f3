package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sandbox/internal/platform/tui"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var (
	flagRunsScenario string
	flagRunsLimit    int
	flagRunsTop      bool
	flagRunsBoard    bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display recorded runs, newest first, or the top runs by mobs killed.

Examples:
  sandbox runs
  sandbox runs --scenario hive
  sandbox runs --top --limit 5
  sandbox runs --board`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsScenario, "scenario", "", "Only show runs of this scenario")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTop, "top", false, "Order by mobs killed instead of date")
	runsCmd.Flags().BoolVar(&flagRunsBoard, "board", false, "Open the interactive runs board")
}

func runRuns(_ *cobra.Command, _ []string) error {
	if flagRunsScenario != "" && !registry.Exists(flagRunsScenario) {
		return fmt.Errorf("unknown scenario %q, run 'sandbox list' to see available scenarios", flagRunsScenario)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagRunsBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunRunsBoard(store, width, height)
	}

	var runs []storage.Run
	switch {
	case flagRunsScenario != "":
		runs, err = store.RunsByScenario(flagRunsScenario, flagRunsLimit)
	case flagRunsTop:
		runs, err = store.TopRuns(flagRunsLimit)
	default:
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'sandbox run <scenario>' to record one.")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %8s  %5s  %5s  %5s  %-4s  %s\n", "ID", "Scenario", "Ticks", "Kills", "Items", "Mined", "End", "Date")
	fmt.Printf("  %-5s  %-8s  %8s  %5s  %5s  %5s  %-4s  %s\n", "--", "--------", "-----", "-----", "-----", "-----", "---", "----")
	for _, r := range runs {
		end := "quit"
		if r.Died {
			end = "died"
		}
		fmt.Printf("  %-5d  %-8s  %8d  %5d  %5d  %5d  %-4s  %s\n",
			r.ID, r.Scenario, r.Ticks, r.MobsKilled, r.ItemsCollected, r.BlocksMined, end,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagRunsScenario != "" {
		stats, err := store.GetScenarioStats(flagRunsScenario)
		if err == nil {
			fmt.Println()
			fmt.Printf("Runs: %d  Deaths: %d  Best kills: %d  Avg ticks: %.0f\n",
				stats.Runs, stats.Deaths, stats.BestKills, stats.AvgTicks)
		}
	}
	return nil
}
