package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded runs",
	Long: `Display the most recent run summaries, optionally for one scenario.
A run is recorded when it deadlocks, finishes, is reset or is left.

Examples:
  synclab history
  synclab history philosophers --limit 50
  synclab history prodcons --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs instead of showing them")
}

func runHistory(_ *cobra.Command, args []string) error {
	scenarioID := ""
	if len(args) == 1 {
		scenarioID = args[0]
		if !registry.Exists(scenarioID) {
			return fmt.Errorf("unknown scenario %q (run 'synclab list' to see available scenarios)", scenarioID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistoryClear {
		n, err := store.ClearRuns(scenarioID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d runs.\n", n)
		return nil
	}

	runs, err := store.RecentRuns(scenarioID, flagHistoryLimit)
	if err != nil {
		return err
	}

	title := "all scenarios"
	if info, ok := registry.Lookup(scenarioID); ok {
		title = info.Title
	}
	fmt.Printf("Run history - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-16s  %6s  %6s  %-8s  %s\n", "Date", "Scenario", "Mode", "Ticks", "Acts", "Outcome", "Session")
	fmt.Printf("  %-16s  %-12s  %-16s  %6s  %6s  %-8s  %s\n", "----", "--------", "----", "-----", "----", "-------", "-------")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-12s  %-16s  %6d  %6d  %-8s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.ScenarioID, r.Mode, r.Ticks, r.Actions, r.Outcome, r.Session)
	}

	fmt.Println()
	if scenarioID != "" {
		st, err := store.ScenarioStats(scenarioID)
		if err == nil {
			fmt.Printf("Runs: %d  deadlocks: %d (%.0f%%)  finished: %d  avg ticks: %.1f  max ticks: %d\n",
				st.Runs, st.Deadlocks, st.DeadlockRate()*100, st.Finished, st.AvgTicks, st.MaxTicks)
		}
		return nil
	}

	stats, err := store.AllStats()
	if err != nil {
		return nil
	}
	for _, info := range registry.List() {
		if st, ok := stats[info.ID]; ok {
			fmt.Printf("  %-12s  %4d runs  %4d deadlocks  %4d finished\n", info.ID, st.Runs, st.Deadlocks, st.Finished)
		}
	}
	return nil
}
