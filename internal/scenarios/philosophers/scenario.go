// Package philosophers simulates the dining philosophers with a naive
// left-then-right strategy that can deadlock, and resource ordering that
// cannot.
package philosophers

import (
	"fmt"
	"time"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Strategy is the fork acquisition strategy.
type Strategy int

const (
	// StrategyNaive takes the left fork, then the right one.
	StrategyNaive Strategy = iota
	// StrategyOrdered takes the lower-numbered fork of the pair first.
	StrategyOrdered
)

func (s Strategy) String() string {
	if s == StrategyOrdered {
		return "ordered"
	}
	return "naive"
}

// ParseStrategy converts a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "naive", "":
		return StrategyNaive, nil
	case "ordered":
		return StrategyOrdered, nil
	default:
		return StrategyNaive, fmt.Errorf("philosophers: unknown strategy %q", s)
	}
}

// Status of a philosopher.
type Status int

const (
	StatusThinking Status = iota
	StatusHungry
	StatusHoldingOne // Holds the first fork of the strategy, waits for the second
	StatusEating
)

func (s Status) String() string {
	switch s {
	case StatusHungry:
		return "hungry"
	case StatusHoldingOne:
		return "holding one"
	case StatusEating:
		return "eating"
	default:
		return "thinking"
	}
}

// Philosopher is one diner.
type Philosopher struct {
	ID      int
	Name    string
	Status  Status
	Actions int // Meals eaten
}

const noOwner = -1

// Scenario implements the dining philosophers tick resolver.
type Scenario struct {
	cfg      config.PhilosophersConfig
	runtime  core.RuntimeConfig
	src      sim.Source
	injected bool

	strategy Strategy
	phils    []Philosopher
	forks    []int // Owner index per fork, noOwner when free

	journal *sim.Journal
	state   core.SimState
}

func init() {
	registry.Register(registry.Info{
		ID:      "philosophers",
		Title:   "Dining Philosophers",
		Summary: "five forks, naive vs. ordered acquisition",
	}, func(opts registry.Options) (registry.Scenario, error) {
		cfg, err := config.LoadPhilosophers(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// New creates a dining philosophers scenario.
func New(cfg config.PhilosophersConfig) (*Scenario, error) {
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	s := &Scenario{cfg: cfg, strategy: strategy}
	s.Reset(core.DefaultConfig())
	return s, nil
}

// UseSource replaces the random source. It survives Reset.
func (s *Scenario) UseSource(src sim.Source) {
	s.src = src
	s.injected = src != nil
}

// ID returns the scenario identifier.
func (s *Scenario) ID() string { return "philosophers" }

// Title returns the display name.
func (s *Scenario) Title() string { return "Dining Philosophers" }

// Reset puts every fork on the table and every philosopher to thinking.
// The strategy is kept.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.runtime = cfg
	if !s.injected {
		s.src = sim.NewSeeded(cfg.Seed)
	}

	n := s.cfg.Count
	s.phils = make([]Philosopher, n)
	s.forks = make([]int, n)
	for i := range n {
		s.phils[i] = Philosopher{ID: i, Name: fmt.Sprintf("P%d", i)}
		s.forks[i] = noOwner
	}

	s.journal = sim.NewJournal(s.cfg.Timing.LogCap)
	s.state = core.SimState{Mode: s.strategy.String()}
}

// Right returns the fork on philosopher i's right: fork i lies between
// philosopher i and philosopher i+1.
func (s *Scenario) Right(i int) int { return i }

// Left returns the fork on philosopher i's left.
func (s *Scenario) Left(i int) int { return (i - 1 + len(s.phils)) % len(s.phils) }

// forkOrder returns the forks philosopher i acquires first and second.
func (s *Scenario) forkOrder(i int) (first, second int) {
	l, r := s.Left(i), s.Right(i)
	if s.strategy == StrategyOrdered {
		return min(l, r), max(l, r)
	}
	return l, r
}

// Step resolves one tick.
func (s *Scenario) Step() core.StepResult {
	if s.state.Stopped() {
		return core.StepResult{State: s.state}
	}
	s.state.Tick++

	if s.allHoldingOne() {
		s.state.Halted = true
		s.journal.Add("system", "deadlock", "every philosopher holds one fork", sim.SeverityError)
		return core.StepResult{State: s.state}
	}

	for _, i := range sim.Shuffle(s.src, len(s.phils)) {
		if s.tryAct(i) {
			s.state.Actions++
			return core.StepResult{State: s.state, Acted: true}
		}
	}
	return core.StepResult{State: s.state}
}

func (s *Scenario) allHoldingOne() bool {
	for _, p := range s.phils {
		if p.Status != StatusHoldingOne {
			return false
		}
	}
	return len(s.phils) > 0
}

// tryAct applies philosopher i's transition if it is eligible this tick.
func (s *Scenario) tryAct(i int) bool {
	p := &s.phils[i]
	first, second := s.forkOrder(i)

	switch p.Status {
	case StatusThinking:
		if !s.src.Chance(s.cfg.HungerChance) {
			return false
		}
		p.Status = StatusHungry
		s.journal.Add(p.Name, "hungry", "", sim.SeverityWarning)

	case StatusHungry:
		if s.forks[first] != noOwner {
			return false
		}
		s.forks[first] = i
		p.Status = StatusHoldingOne
		s.journal.Add(p.Name, "pick up", fmt.Sprintf("fork %d (first)", first), sim.SeverityInfo)

	case StatusHoldingOne:
		if s.forks[second] != noOwner {
			return false
		}
		s.forks[second] = i
		p.Status = StatusEating
		p.Actions++
		s.journal.Add(p.Name, "eat", fmt.Sprintf("forks %d and %d", first, second), sim.SeveritySuccess)

	case StatusEating:
		if !s.src.Chance(s.cfg.FinishChance) {
			return false
		}
		for f, owner := range s.forks {
			if owner == i {
				s.forks[f] = noOwner
			}
		}
		p.Status = StatusThinking
		s.journal.Add(p.Name, "think", fmt.Sprintf("put down forks %d and %d", first, second), sim.SeverityInfo)
	}
	return true
}

// Control handles CycleMode (switch strategy and reset) and ForceDeadlock.
func (s *Scenario) Control(a core.Action) bool {
	switch a {
	case core.ActionCycleMode:
		if s.strategy == StrategyNaive {
			s.strategy = StrategyOrdered
		} else {
			s.strategy = StrategyNaive
		}
		s.Reset(s.runtime)
		return true
	case core.ActionForceDeadlock:
		return s.ForceDeadlock()
	}
	return false
}

// ForceDeadlock switches to the naive strategy and hands every philosopher
// its left fork, bypassing the resolver.
func (s *Scenario) ForceDeadlock() bool {
	if s.state.Halted {
		return false
	}
	s.strategy = StrategyNaive
	s.state.Mode = s.strategy.String()

	for i := range s.phils {
		s.phils[i].Status = StatusHoldingOne
		s.forks[s.Left(i)] = i
	}
	s.state.Halted = true
	s.journal.Add("system", "forced deadlock", "every philosopher holds the left fork", sim.SeverityError)
	return true
}

// Interval returns the tick interval scaled by the runtime speed.
func (s *Scenario) Interval() time.Duration {
	return sim.Scale(s.cfg.Timing.Interval(), s.runtime.Speed)
}

// State returns the tick counters.
func (s *Scenario) State() core.SimState { return s.state }

// Journal returns the recent log, most recent first.
func (s *Scenario) Journal() []sim.Entry { return s.journal.Entries() }

// Strategy returns the current fork acquisition strategy.
func (s *Scenario) Strategy() Strategy { return s.strategy }

// Philosophers returns a copy of the diners.
func (s *Scenario) Philosophers() []Philosopher {
	out := make([]Philosopher, len(s.phils))
	copy(out, s.phils)
	return out
}

// ForkOwner returns the philosopher holding fork f, or -1.
func (s *Scenario) ForkOwner(f int) int { return s.forks[f] }
