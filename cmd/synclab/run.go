package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/synclab/internal/platform/tui"
)

var flagMode string

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario",
	Long: `Mount the specified scenario. It starts paused.

Controls:
  Space      - Start/pause the tick timer
  N          - Resolve a single tick while paused
  R          - Reset
  M          - Cycle mode (strategy, acquisition order, policy)
  D          - Force a deadlock (where supported)
  +/-        - Faster/slower
  Esc/Q      - Quit

Examples:
  synclab run prodcons
  synclab run philosophers --mode ordered
  synclab run counter --mode safe --speed turbo
  synclab run fruit --config ./my-fruit.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagMode, "mode", "", "Initial mode, e.g. naive/ordered, normal/inverted, unsafe/safe")
}

func runRun(_ *cobra.Command, args []string) error {
	cfg, speed, err := runtimeConfig()
	if err != nil {
		return err
	}

	scn, err := createScenario(args[0], flagMode)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(scn, store, cfg, speed)
}
