package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sandbox/internal/platform/tui"
	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/sandbox"
	"github.com/vovakirdan/tui-sandbox/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Watch and play a scenario",
	Long: `Open a live view of the scenario, stepping the world every tick.

Controls:
  A/D, Left/Right  - Walk
  W/S, Up/Down     - Push up/down
  Space            - Jump
  H/J/K/L          - Move the target cursor
  X/Enter          - Mine or attack at the cursor
  P                - Pause
  R                - Restart (after death)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C, Esc    - Quit

Examples:
  sandbox watch simple
  sandbox watch hive --seed 7
  sandbox watch meadow --tick 30ms --config ./world.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown scenario %q, run 'sandbox list' to see available scenarios", id)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := runtimeConfig(width, height)

	// The viewer owns the terminal; only warnings and errors reach stderr.
	quiet := logger.WithPrefix("watch")
	quiet.SetLevel(max(logger.GetLevel(), log.WarnLevel))

	session, err := sandbox.New(id, worldCfg, sandbox.WithLogger(quiet))
	if err != nil {
		return err
	}
	if err := session.Reset(cfg); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		quiet.Warn("could not open runs database, runs will not be recorded", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(session, store, cfg, quiet)
}
