package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/synclab/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start synclab with a scenario picker",
	Long: `Start synclab in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to mount a scenario, Tab for the
run history. Esc leaves a scenario and returns to the menu.

Examples:
  synclab menu
  synclab menu --speed slow
  synclab menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, speed, err := runtimeConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(store, cfg, tui.SessionOptions{
		ConfigPath: flagConfig,
		Speed:      speed,
	})
}
