// Package fruit simulates the apple/orange plate problem: father and mother
// put fruit on a single plate, daughter eats only apples and son only oranges.
package fruit

import (
	"time"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Plate is the single shared slot.
type Plate int

const (
	PlateEmpty Plate = iota
	PlateApple
	PlateOrange
)

func (p Plate) String() string {
	switch p {
	case PlateApple:
		return "apple"
	case PlateOrange:
		return "orange"
	default:
		return "empty"
	}
}

// Role identifies a family member.
type Role int

const (
	Father Role = iota
	Mother
	Daughter
	Son
)

func (r Role) String() string {
	switch r {
	case Father:
		return "Father"
	case Mother:
		return "Mother"
	case Daughter:
		return "Daughter"
	default:
		return "Son"
	}
}

// Status of a family member.
type Status int

const (
	StatusIdle Status = iota
	StatusWorking
)

func (s Status) String() string {
	if s == StatusWorking {
		return "working"
	}
	return "idle"
}

// Actor is one family member.
type Actor struct {
	ID      int
	Name    string
	Role    Role
	Status  Status
	Actions int
}

// Scenario implements the apple/orange tick resolver.
type Scenario struct {
	cfg      config.FruitConfig
	runtime  core.RuntimeConfig
	src      sim.Source
	injected bool

	plate      Plate
	plateGate  sim.Semaphore
	appleGate  sim.Semaphore
	orangeGate sim.Semaphore
	actors     []Actor

	journal *sim.Journal
	state   core.SimState
}

func init() {
	registry.Register(registry.Info{
		ID:      "fruit",
		Title:   "Apple / Orange",
		Summary: "one plate, two producers, two picky consumers",
	}, func(opts registry.Options) (registry.Scenario, error) {
		cfg, err := config.LoadFruit(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// New creates an apple/orange scenario. Call Reset before stepping.
func New(cfg config.FruitConfig) *Scenario {
	s := &Scenario{cfg: cfg}
	s.Reset(core.DefaultConfig())
	return s
}

// UseSource replaces the random source. It survives Reset.
func (s *Scenario) UseSource(src sim.Source) {
	s.src = src
	s.injected = src != nil
}

// ID returns the scenario identifier.
func (s *Scenario) ID() string { return "fruit" }

// Title returns the display name.
func (s *Scenario) Title() string { return "Apple / Orange" }

// Reset restores the empty plate and idle family.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.runtime = cfg
	if !s.injected {
		s.src = sim.NewSeeded(cfg.Seed)
	}

	s.plate = PlateEmpty
	s.plateGate = sim.NewSemaphore(1, 1)
	s.appleGate = sim.NewSemaphore(0, 1)
	s.orangeGate = sim.NewSemaphore(0, 1)

	s.actors = make([]Actor, 0, 4)
	for _, r := range []Role{Father, Mother, Daughter, Son} {
		s.actors = append(s.actors, Actor{ID: int(r) + 1, Name: r.String(), Role: r})
	}

	s.journal = sim.NewJournal(s.cfg.Timing.LogCap)
	s.state = core.SimState{}
}

// Step resolves one tick.
func (s *Scenario) Step() core.StepResult {
	if s.state.Stopped() {
		return core.StepResult{State: s.state}
	}
	s.state.Tick++

	// A member who acted last tick finishes first; nothing else moves.
	settled := false
	for i := range s.actors {
		if s.actors[i].Status == StatusWorking {
			s.actors[i].Status = StatusIdle
			settled = true
		}
	}
	if settled {
		return core.StepResult{State: s.state}
	}

	idx, ok := sim.Choose(s.src, s.candidates())
	if !ok {
		return core.StepResult{State: s.state}
	}
	s.apply(idx)
	s.state.Actions++
	return core.StepResult{State: s.state, Acted: true}
}

// candidates returns the indices of members whose gate is open.
func (s *Scenario) candidates() []int {
	var out []int
	for i, a := range s.actors {
		if s.gateFor(a.Role).Open() {
			out = append(out, i)
		}
	}
	return out
}

func (s *Scenario) gateFor(r Role) *sim.Semaphore {
	switch r {
	case Father, Mother:
		return &s.plateGate
	case Daughter:
		return &s.appleGate
	default:
		return &s.orangeGate
	}
}

func (s *Scenario) apply(idx int) {
	a := &s.actors[idx]
	s.gateFor(a.Role).TryAcquire()

	switch a.Role {
	case Father:
		s.plate = PlateApple
		s.appleGate.Release()
		s.journal.Add(a.Name, "put an apple", "plate=apple", sim.SeveritySuccess)
	case Mother:
		s.plate = PlateOrange
		s.orangeGate.Release()
		s.journal.Add(a.Name, "put an orange", "plate=orange", sim.SeveritySuccess)
	case Daughter:
		s.plate = PlateEmpty
		s.plateGate.Release()
		s.journal.Add(a.Name, "ate the apple", "plate empty", sim.SeverityInfo)
	case Son:
		s.plate = PlateEmpty
		s.plateGate.Release()
		s.journal.Add(a.Name, "ate the orange", "plate empty", sim.SeverityInfo)
	}

	a.Status = StatusWorking
	a.Actions++
}

// Control handles no intents: the scenario has a single mode and cannot deadlock.
func (s *Scenario) Control(core.Action) bool { return false }

// Interval returns the tick interval scaled by the runtime speed.
func (s *Scenario) Interval() time.Duration {
	return sim.Scale(s.cfg.Timing.Interval(), s.runtime.Speed)
}

// State returns the tick counters.
func (s *Scenario) State() core.SimState { return s.state }

// Journal returns the recent log, most recent first.
func (s *Scenario) Journal() []sim.Entry { return s.journal.Entries() }

// Ready reports whether a member's gate is currently open.
func (s *Scenario) Ready(r Role) bool {
	return s.gateFor(r).Open()
}

// Plate returns the plate content.
func (s *Scenario) Plate() Plate { return s.plate }

// Actors returns a copy of the family.
func (s *Scenario) Actors() []Actor {
	out := make([]Actor, len(s.actors))
	copy(out, s.actors)
	return out
}
