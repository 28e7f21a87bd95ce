// Package prodcons simulates producers and consumers sharing a bounded
// buffer guarded by two counting semaphores and a mutex.
package prodcons

import (
	"fmt"
	"time"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Order is the semaphore acquisition order.
type Order int

const (
	// OrderNormal acquires the counting gate, then the mutex.
	OrderNormal Order = iota
	// OrderInverted acquires the mutex first and deadlocks when the
	// counting gate is closed.
	OrderInverted
)

func (o Order) String() string {
	if o == OrderInverted {
		return "inverted"
	}
	return "normal"
}

// ParseOrder converts a config value to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "normal", "":
		return OrderNormal, nil
	case "inverted":
		return OrderInverted, nil
	default:
		return OrderNormal, fmt.Errorf("prodcons: unknown order %q", s)
	}
}

// Gate names a semaphore an actor can block on.
type Gate int

const (
	GateNone Gate = iota
	GateEmpty
	GateFull
	GateMutex
)

func (g Gate) String() string {
	switch g {
	case GateEmpty:
		return "empty"
	case GateFull:
		return "full"
	case GateMutex:
		return "mutex"
	default:
		return "-"
	}
}

// Kind distinguishes producers from consumers.
type Kind int

const (
	Producer Kind = iota
	Consumer
)

// Status is an actor's state. Blocked carries the gate in Actor.On.
type Status int

const (
	StatusIdle Status = iota
	StatusBlocked
	StatusWorking
)

func (s Status) String() string {
	switch s {
	case StatusBlocked:
		return "blocked"
	case StatusWorking:
		return "working"
	default:
		return "idle"
	}
}

// Actor is one producer or consumer.
type Actor struct {
	ID      int
	Name    string
	Kind    Kind
	Status  Status
	On      Gate // Gate the actor is blocked on, GateNone otherwise
	Actions int
}

// Item is a produced value occupying a buffer slot.
type Item struct {
	ID         int // Global production sequence number
	Value      int // The producer's own production count
	ProducerID int
}

// Scenario implements the producer/consumer tick resolver.
type Scenario struct {
	cfg      config.ProdConsConfig
	runtime  core.RuntimeConfig
	src      sim.Source
	injected bool

	order  Order
	buffer []*Item
	empty  sim.Semaphore
	full   sim.Semaphore
	mutex  sim.Mutex
	queues map[Gate][]string
	actors []Actor
	nextID int

	history []int
	journal *sim.Journal
	state   core.SimState
}

func init() {
	registry.Register(registry.Info{
		ID:      "prodcons",
		Title:   "Producer / Consumer",
		Summary: "bounded buffer with empty/full semaphores and a mutex",
	}, func(opts registry.Options) (registry.Scenario, error) {
		cfg, err := config.LoadProdCons(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// New creates a producer/consumer scenario from a validated config.
func New(cfg config.ProdConsConfig) (*Scenario, error) {
	order, err := ParseOrder(cfg.Order)
	if err != nil {
		return nil, err
	}
	s := &Scenario{cfg: cfg, order: order}
	s.Reset(core.DefaultConfig())
	return s, nil
}

// UseSource replaces the random source. It survives Reset.
func (s *Scenario) UseSource(src sim.Source) {
	s.src = src
	s.injected = src != nil
}

// ID returns the scenario identifier.
func (s *Scenario) ID() string { return "prodcons" }

// Title returns the display name.
func (s *Scenario) Title() string { return "Producer / Consumer" }

// Reset empties the buffer and recreates all actors. The acquisition
// order is kept.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.runtime = cfg
	if !s.injected {
		s.src = sim.NewSeeded(cfg.Seed)
	}

	capacity := s.cfg.Capacity
	s.buffer = make([]*Item, capacity)
	s.empty = sim.NewSemaphore(capacity, capacity)
	s.full = sim.NewSemaphore(0, capacity)
	s.mutex = sim.Mutex{}
	s.queues = map[Gate][]string{GateEmpty: {}, GateFull: {}, GateMutex: {}}
	s.nextID = 1

	s.actors = make([]Actor, 0, s.cfg.Producers+s.cfg.Consumers)
	for i := 1; i <= s.cfg.Producers; i++ {
		s.actors = append(s.actors, Actor{ID: len(s.actors) + 1, Name: fmt.Sprintf("P-%d", i), Kind: Producer})
	}
	for i := 1; i <= s.cfg.Consumers; i++ {
		s.actors = append(s.actors, Actor{ID: len(s.actors) + 1, Name: fmt.Sprintf("C-%d", i), Kind: Consumer})
	}

	s.history = make([]int, 0, s.cfg.HistoryLen)
	s.journal = sim.NewJournal(s.cfg.Timing.LogCap)
	s.state = core.SimState{Mode: s.order.String()}
}

// Step resolves one tick.
func (s *Scenario) Step() core.StepResult {
	if s.state.Stopped() {
		return core.StepResult{State: s.state}
	}
	s.state.Tick++
	s.sample()

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

	s.refreshBlocked()
	idx, ok := sim.Choose(s.src, s.candidates())
	if !ok {
		return core.StepResult{State: s.state}
	}

	if s.order == OrderInverted {
		s.enterInverted(idx)
	} else {
		s.enterNormal(idx)
	}
	if !s.state.Halted {
		s.refreshBlocked()
	}
	s.state.Actions++
	return core.StepResult{State: s.state, Acted: true}
}

// sample records buffer occupancy for the chart.
func (s *Scenario) sample() {
	if s.cfg.HistoryLen == 0 {
		return
	}
	if len(s.history) == s.cfg.HistoryLen {
		s.history = append(s.history[:0], s.history[1:]...)
	}
	s.history = append(s.history, s.full.Value)
}

// counting returns the semaphore an actor decrements before touching the buffer.
func (s *Scenario) counting(k Kind) (*sim.Semaphore, Gate) {
	if k == Producer {
		return &s.empty, GateEmpty
	}
	return &s.full, GateFull
}

// firstGate returns the gate the actor acquires first under the current order.
func (s *Scenario) firstGate(a Actor) (open bool, g Gate) {
	if s.order == OrderInverted {
		return !s.mutex.Locked, GateMutex
	}
	sem, g := s.counting(a.Kind)
	return sem.Open() && !s.mutex.Locked, g
}

// refreshBlocked parks actors whose first gate is closed and wakes the
// ones whose gate reopened.
func (s *Scenario) refreshBlocked() {
	for i := range s.actors {
		a := &s.actors[i]
		if a.Status == StatusWorking {
			continue
		}
		open, g := s.firstGate(*a)
		switch {
		case !open && (a.Status != StatusBlocked || a.On != g):
			s.block(a, g)
		case open && a.Status == StatusBlocked:
			s.wake(a)
		}
	}
}

func (s *Scenario) block(a *Actor, g Gate) {
	if a.Status == StatusBlocked {
		s.dequeue(a)
	}
	a.Status = StatusBlocked
	a.On = g
	s.queues[g] = append(s.queues[g], a.Name)
}

func (s *Scenario) wake(a *Actor) {
	s.dequeue(a)
	a.Status = StatusIdle
	a.On = GateNone
}

func (s *Scenario) dequeue(a *Actor) {
	q := s.queues[a.On]
	for i, name := range q {
		if name == a.Name {
			s.queues[a.On] = append(q[:i:i], q[i+1:]...)
			return
		}
	}
}

// candidates returns the indices of idle actors whose first gate is open.
func (s *Scenario) candidates() []int {
	var out []int
	for i, a := range s.actors {
		if a.Status != StatusIdle {
			continue
		}
		if open, _ := s.firstGate(a); open {
			out = append(out, i)
		}
	}
	return out
}

// enterNormal runs P(counting), P(mutex), the buffer operation,
// V(mutex) and V(other counting) as one transition.
func (s *Scenario) enterNormal(idx int) {
	a := &s.actors[idx]
	sem, _ := s.counting(a.Kind)
	sem.TryAcquire()
	s.mutex.TryLock(a.Name)
	s.critical(a)
	s.mutex.Unlock(a.Name)
}

// enterInverted takes the mutex first. Finding the counting gate closed
// while holding it is a deadlock: the mutex is never released.
func (s *Scenario) enterInverted(idx int) {
	a := &s.actors[idx]
	s.mutex.TryLock(a.Name)

	sem, g := s.counting(a.Kind)
	if !sem.TryAcquire() {
		s.deadlock(a, g)
		return
	}
	s.critical(a)
	s.mutex.Unlock(a.Name)
}

// critical performs the buffer operation and the V on the opposite gate.
func (s *Scenario) critical(a *Actor) {
	if a.Kind == Producer {
		slot := s.firstSlot(false)
		a.Actions++
		s.buffer[slot] = &Item{ID: s.nextID, Value: a.Actions, ProducerID: a.ID}
		s.nextID++
		s.full.Release()
		s.journal.Add(a.Name, "produce", fmt.Sprintf("item #%d into slot [%d]", s.buffer[slot].ID, slot), sim.SeveritySuccess)
	} else {
		slot := s.firstSlot(true)
		item := s.buffer[slot]
		s.buffer[slot] = nil
		a.Actions++
		s.empty.Release()
		s.journal.Add(a.Name, "consume", fmt.Sprintf("item #%d from slot [%d]", item.ID, slot), sim.SeverityInfo)
	}
	a.Status = StatusWorking
	a.On = GateNone
}

// firstSlot returns the lowest occupied (or free) slot index.
func (s *Scenario) firstSlot(occupied bool) int {
	for i, it := range s.buffer {
		if (it != nil) == occupied {
			return i
		}
	}
	return -1
}

func (s *Scenario) deadlock(a *Actor, g Gate) {
	s.block(a, g)
	for i := range s.actors {
		other := &s.actors[i]
		if other.Name == a.Name {
			continue
		}
		if other.Status == StatusBlocked {
			s.dequeue(other)
		}
		other.Status = StatusBlocked
		other.On = GateMutex
		s.queues[GateMutex] = append(s.queues[GateMutex], other.Name)
	}
	s.state.Halted = true
	s.journal.Add(a.Name, "deadlock", fmt.Sprintf("holds mutex, %s=0", g), sim.SeverityError)
}

// Control handles CycleMode (toggle acquisition order and reset) and
// ForceDeadlock (switch to inverted order and block on a closed gate).
func (s *Scenario) Control(a core.Action) bool {
	switch a {
	case core.ActionCycleMode:
		if s.order == OrderNormal {
			s.order = OrderInverted
		} else {
			s.order = OrderNormal
		}
		s.Reset(s.runtime)
		return true
	case core.ActionForceDeadlock:
		return s.forceDeadlock()
	}
	return false
}

// forceDeadlock switches to inverted order and lets an actor take the mutex
// while its counting gate is closed: a consumer on an empty buffer or a
// producer on a full one. It is refused when the buffer is neither.
func (s *Scenario) forceDeadlock() bool {
	if s.state.Stopped() {
		return false
	}

	var kind Kind
	switch {
	case !s.full.Open():
		kind = Consumer
	case !s.empty.Open():
		kind = Producer
	default:
		return false
	}

	for i := range s.actors {
		a := &s.actors[i]
		if a.Kind != kind || a.Status == StatusWorking {
			continue
		}
		if a.Status == StatusBlocked {
			s.wake(a)
		}
		s.order = OrderInverted
		s.state.Mode = s.order.String()
		s.enterInverted(i)
		return true
	}
	return false
}

// Interval returns the tick interval scaled by the runtime speed.
func (s *Scenario) Interval() time.Duration {
	return sim.Scale(s.cfg.Timing.Interval(), s.runtime.Speed)
}

// State returns the tick counters.
func (s *Scenario) State() core.SimState { return s.state }

// Journal returns the recent log, most recent first.
func (s *Scenario) Journal() []sim.Entry { return s.journal.Entries() }

// Order returns the current acquisition order.
func (s *Scenario) Order() Order { return s.order }

// Queue returns the names blocked on a gate, in arrival order.
func (s *Scenario) Queue(g Gate) []string {
	q := s.queues[g]
	out := make([]string, len(q))
	copy(out, q)
	return out
}

// Actors returns a copy of all producers and consumers.
func (s *Scenario) Actors() []Actor {
	out := make([]Actor, len(s.actors))
	copy(out, s.actors)
	return out
}
