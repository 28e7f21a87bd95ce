// Package counter shows two threads racing on count++ one
// micro-instruction at a time: read RAM into a register, increment, write back.
package counter

import (
	"fmt"
	"time"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Mode selects whether the increment is a critical section.
type Mode int

const (
	ModeUnsafe Mode = iota
	ModeSafe
)

func (m Mode) String() string {
	if m == ModeSafe {
		return "safe"
	}
	return "unsafe"
}

// ParseMode converts a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "unsafe", "":
		return ModeUnsafe, nil
	case "safe":
		return ModeSafe, nil
	default:
		return ModeUnsafe, fmt.Errorf("counter: unknown mode %q", s)
	}
}

// PC is the next micro-instruction a thread executes.
type PC int

const (
	PCIdle PC = iota
	PCRead
	PCInc
	PCWrite
)

func (p PC) String() string {
	switch p {
	case PCRead:
		return "READ"
	case PCInc:
		return "INC"
	case PCWrite:
		return "WRITE"
	default:
		return "IDLE"
	}
}

// Thread is one incrementing thread.
type Thread struct {
	ID      int
	Name    string
	PC      PC
	Reg     int
	Loaded  bool // Reg holds a value read from RAM
	Counted int  // Completed increments
}

func (t Thread) busy() bool { return t.PC != PCIdle }

// Scenario implements the counter race tick resolver.
type Scenario struct {
	cfg      config.CounterConfig
	runtime  core.RuntimeConfig
	src      sim.Source
	injected bool

	mode    Mode
	ram     int
	threads []Thread

	journal *sim.Journal
	state   core.SimState
}

func init() {
	registry.Register(registry.Info{
		ID:      "counter",
		Title:   "Counter Race",
		Summary: "two threads, one count++, lost updates",
	}, func(opts registry.Options) (registry.Scenario, error) {
		cfg, err := config.LoadCounter(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// New creates a counter race scenario.
func New(cfg config.CounterConfig) (*Scenario, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	s := &Scenario{cfg: cfg, mode: mode}
	s.Reset(core.DefaultConfig())
	return s, nil
}

// UseSource replaces the random source. It survives Reset.
func (s *Scenario) UseSource(src sim.Source) {
	s.src = src
	s.injected = src != nil
}

// ID returns the scenario identifier.
func (s *Scenario) ID() string { return "counter" }

// Title returns the display name.
func (s *Scenario) Title() string { return "Counter Race" }

// Reset zeroes RAM and both threads. The mode is kept.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.runtime = cfg
	if !s.injected {
		s.src = sim.NewSeeded(cfg.Seed)
	}

	s.ram = 0
	s.threads = []Thread{{ID: 1, Name: "T1"}, {ID: 2, Name: "T2"}}
	s.journal = sim.NewJournal(s.cfg.Timing.LogCap)
	s.state = core.SimState{Mode: s.mode.String()}
}

// Step executes one micro-instruction of one thread.
func (s *Scenario) Step() core.StepResult {
	if s.state.Stopped() {
		return core.StepResult{State: s.state}
	}
	s.state.Tick++

	idx, ok := s.schedule()
	if !ok {
		s.state.Finished = true
		s.journal.Add("system", "finished",
			fmt.Sprintf("RAM=%d expected=%d lost=%d", s.ram, s.Expected(), s.Lost()), s.finishSeverity())
		return core.StepResult{State: s.state}
	}

	s.execute(idx)
	s.state.Actions++
	return core.StepResult{State: s.state, Acted: true}
}

// schedule picks the thread that runs this tick.
func (s *Scenario) schedule() (int, bool) {
	if s.mode == ModeSafe {
		// The sequence is a critical section: a busy thread always continues.
		for i, t := range s.threads {
			if t.busy() {
				return i, true
			}
		}
		var ready []int
		for i, t := range s.threads {
			if t.Counted < s.cfg.Target {
				ready = append(ready, i)
			}
		}
		return sim.Choose(s.src, ready)
	}

	var ready []int
	for i, t := range s.threads {
		if t.Counted < s.cfg.Target || t.busy() {
			ready = append(ready, i)
		}
	}
	return sim.Choose(s.src, ready)
}

func (s *Scenario) execute(idx int) {
	t := &s.threads[idx]
	switch t.PC {
	case PCIdle:
		t.PC = PCRead
		s.journal.Add(t.Name, "start", "count++", sim.SeverityInfo)
	case PCRead:
		t.Reg, t.Loaded = s.ram, true
		t.PC = PCInc
		s.journal.Add(t.Name, "READ", fmt.Sprintf("reg=%d", t.Reg), sim.SeverityInfo)
	case PCInc:
		t.Reg++
		t.PC = PCWrite
		s.journal.Add(t.Name, "INC", fmt.Sprintf("reg=%d", t.Reg), sim.SeverityInfo)
	case PCWrite:
		sev := sim.SeveritySuccess
		detail := fmt.Sprintf("RAM=%d", t.Reg)
		if t.Reg <= s.ram {
			sev = sim.SeverityWarning
			detail += fmt.Sprintf(" (overwrote %d)", s.ram)
		}
		s.ram = t.Reg
		t.PC = PCIdle
		t.Loaded = false
		t.Counted++
		s.journal.Add(t.Name, "WRITE", detail, sev)
	}
}

func (s *Scenario) finishSeverity() sim.Severity {
	if s.Lost() > 0 {
		return sim.SeverityError
	}
	return sim.SeveritySuccess
}

// Control handles CycleMode: toggle safe/unsafe and reset.
func (s *Scenario) Control(a core.Action) bool {
	if a != core.ActionCycleMode {
		return false
	}
	if s.mode == ModeUnsafe {
		s.mode = ModeSafe
	} else {
		s.mode = ModeUnsafe
	}
	s.Reset(s.runtime)
	return true
}

// Interval returns the tick interval for the current mode.
func (s *Scenario) Interval() time.Duration {
	base := s.cfg.Timing.Interval()
	if s.mode == ModeUnsafe {
		base = time.Duration(s.cfg.UnsafeIntervalMS) * time.Millisecond
	}
	return sim.Scale(base, s.runtime.Speed)
}

// State returns the tick counters.
func (s *Scenario) State() core.SimState { return s.state }

// Journal returns the recent log, most recent first.
func (s *Scenario) Journal() []sim.Entry { return s.journal.Entries() }

// Mode returns the current mode.
func (s *Scenario) Mode() Mode { return s.mode }

// RAM returns the shared counter.
func (s *Scenario) RAM() int { return s.ram }

// Expected returns the value RAM holds when no update is lost.
func (s *Scenario) Expected() int { return s.cfg.Target * len(s.threads) }

// Lost returns how many completed increments are missing from RAM.
func (s *Scenario) Lost() int {
	done := 0
	for _, t := range s.threads {
		done += t.Counted
	}
	return done - s.ram
}

// Threads returns a copy of both threads.
func (s *Scenario) Threads() []Thread {
	out := make([]Thread, len(s.threads))
	copy(out, s.threads)
	return out
}
