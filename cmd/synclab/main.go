// synclab runs tick-based simulations of classic synchronization problems
// in the terminal.
//
// Usage:
//
//	synclab list                 - List available scenarios
//	synclab run <scenario>       - Run one scenario
//	synclab menu                 - Pick scenarios interactively
//	synclab serve                - Start SSH server for remote sessions
//	synclab history [scenario]   - Show recorded runs
//	synclab trace <scenario>     - Step a scenario headless and print its log
//
// Global flags:
//
//	--seed <value>   - RNG seed for reproducible runs
//	--speed <preset> - slow, normal, fast or turbo
//	--db <path>      - Run history database (default: ~/.synclab/runs.db)
//	--config <path>  - Custom scenario config YAML
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import scenarios to register them
	_ "github.com/vovakirdan/synclab/internal/scenarios/counter"
	_ "github.com/vovakirdan/synclab/internal/scenarios/fruit"
	_ "github.com/vovakirdan/synclab/internal/scenarios/philosophers"
	_ "github.com/vovakirdan/synclab/internal/scenarios/prodcons"
	_ "github.com/vovakirdan/synclab/internal/scenarios/readwriter"
	_ "github.com/vovakirdan/synclab/internal/scenarios/wordcount"
)

var (
	flagSeed   int64
	flagSpeed  string
	flagDBPath string
	flagConfig string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "synclab"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "synclab",
	Short: "synclab - synchronization problems, one tick at a time",
	Long: `synclab animates classic OS synchronization problems in your terminal.
Every scenario is a serialized tick resolver: each tick at most one actor
moves, so deadlocks and lost updates can be watched step by step.

Available commands:
  list     - Show all scenarios
  run      - Run a specific scenario directly
  menu     - Interactive scenario picker
  serve    - Start SSH server for remote sessions
  history  - Show recorded runs
  trace    - Step a scenario headless and print its log

Examples:
  synclab list
  synclab run philosophers --mode naive
  synclab menu --speed fast
  synclab trace counter --ticks 200 --seed 7
  synclab history prodcons`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "normal", "Speed preset: slow, normal, fast, turbo")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.synclab/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom scenario config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(traceCmd)
}
