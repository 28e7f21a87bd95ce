package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

var (
	flagTraceTicks    int
	flagTraceMode     string
	flagTraceDeadlock int
	flagTraceFormat   string
	flagTraceRender   bool
	flagTraceVerbose  bool
)

var traceCmd = &cobra.Command{
	Use:   "trace <scenario>",
	Short: "Step a scenario headless and print its log",
	Long: `Resolve ticks without a terminal UI and print every journal entry,
followed by the final state. Stops early when the scenario deadlocks or
finishes. With a fixed --seed the output is reproducible.

Examples:
  synclab trace philosophers --ticks 300 --seed 42
  synclab trace philosophers --deadlock 5
  synclab trace prodcons --mode inverted --format yaml
  synclab trace wordcount --mode unsafe --render`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().IntVar(&flagTraceTicks, "ticks", 100, "Maximum number of ticks to resolve")
	traceCmd.Flags().StringVar(&flagTraceMode, "mode", "", "Mode to trace")
	traceCmd.Flags().IntVar(&flagTraceDeadlock, "deadlock", 0, "Force a deadlock from this tick on (0 = never)")
	traceCmd.Flags().StringVar(&flagTraceFormat, "format", "text", "Output format: text or yaml")
	traceCmd.Flags().BoolVar(&flagTraceRender, "render", false, "Print the final screen (text format only)")
	traceCmd.Flags().BoolVarP(&flagTraceVerbose, "verbose", "v", false, "Log every tick to stderr")
}

// traceEntry is a journal entry tagged with the tick that produced it.
type traceEntry struct {
	Tick     int          `yaml:"tick"`
	Seq      int          `yaml:"seq"`
	Actor    string       `yaml:"actor"`
	Action   string       `yaml:"action"`
	Detail   string       `yaml:"detail,omitempty"`
	Severity sim.Severity `yaml:"severity"`
}

// traceReport is the result of a headless run.
type traceReport struct {
	Scenario string       `yaml:"scenario"`
	Mode     string       `yaml:"mode"`
	Seed     int64        `yaml:"seed"`
	Ticks    int          `yaml:"ticks"`
	Actions  int          `yaml:"actions"`
	Outcome  string       `yaml:"outcome"`
	Entries  []traceEntry `yaml:"entries"`
	Final    any          `yaml:"final,omitempty"`
}

type traceOptions struct {
	Ticks      int
	DeadlockAt int
	Seed       int64
}

// tracer is implemented by scenarios that expose a serializable snapshot.
type tracer interface {
	Trace() any
}

func runTrace(_ *cobra.Command, args []string) error {
	if flagTraceFormat != "text" && flagTraceFormat != "yaml" {
		return fmt.Errorf("unknown format %q (want text or yaml)", flagTraceFormat)
	}
	if flagTraceVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	scn, err := createScenario(args[0], flagTraceMode)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	report := traceScenario(scn, traceOptions{
		Ticks:      flagTraceTicks,
		DeadlockAt: flagTraceDeadlock,
		Seed:       seed,
	}, logger)

	if flagTraceFormat == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	}

	writeTraceText(os.Stdout, report)
	if flagTraceRender {
		cfg, _, err := runtimeConfig()
		if err != nil {
			return err
		}
		screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
		scn.Render(screen)
		fmt.Println()
		fmt.Println(screen.String())
	}
	return nil
}

// traceScenario resets the scenario with the given seed and resolves up to
// opts.Ticks ticks, collecting each new journal entry in order.
func traceScenario(scn registry.Scenario, opts traceOptions, logger *log.Logger) traceReport {
	cfg := core.DefaultConfig()
	cfg.Seed = opts.Seed
	scn.Reset(cfg)

	report := traceReport{
		Scenario: scn.ID(),
		Mode:     scn.State().Mode,
		Seed:     opts.Seed,
	}

	lastSeq := 0
	collect := func(tick int) {
		var fresh []sim.Entry
		for _, e := range scn.Journal() {
			if e.Seq > lastSeq {
				fresh = append(fresh, e)
			}
		}
		slices.Reverse(fresh)
		for _, e := range fresh {
			report.Entries = append(report.Entries, traceEntry{
				Tick: tick, Seq: e.Seq, Actor: e.Actor, Action: e.Action, Detail: e.Detail, Severity: e.Severity,
			})
			lastSeq = e.Seq
		}
	}

	for tick := 1; tick <= opts.Ticks && !scn.State().Stopped(); tick++ {
		if opts.DeadlockAt > 0 && tick >= opts.DeadlockAt {
			if scn.Control(core.ActionForceDeadlock) {
				logger.Debug("forced deadlock", "tick", tick)
				collect(scn.State().Tick)
				opts.DeadlockAt = 0
				if scn.State().Stopped() {
					break
				}
			}
		}

		res := scn.Step()
		logger.Debug("tick", "n", res.State.Tick, "acted", res.Acted, "halted", res.State.Halted)
		collect(res.State.Tick)
	}

	st := scn.State()
	report.Ticks = st.Tick
	report.Actions = st.Actions
	report.Outcome = st.Outcome()
	if t, ok := scn.(tracer); ok {
		report.Final = t.Trace()
	}
	return report
}

func writeTraceText(w io.Writer, r traceReport) {
	fmt.Fprintf(w, "trace %s  mode=%s  seed=%d\n\n", r.Scenario, r.Mode, r.Seed)
	for _, e := range r.Entries {
		line := fmt.Sprintf("%5d  %-12s %-10s", e.Tick, e.Actor, e.Action)
		if e.Detail != "" {
			line += " " + e.Detail
		}
		if e.Severity == sim.SeverityError || e.Severity == sim.SeverityWarning {
			line += "  [" + string(e.Severity) + "]"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%d ticks, %d actions: %s\n", r.Ticks, r.Actions, r.Outcome)

	if r.Final != nil {
		out, err := yaml.Marshal(r.Final)
		if err == nil {
			fmt.Fprintln(w)
			fmt.Fprint(w, string(out))
		}
	}
}
