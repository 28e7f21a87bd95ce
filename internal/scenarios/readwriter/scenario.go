// Package readwriter simulates readers sharing a resource with a single
// exclusive writer under reader- or writer-priority.
package readwriter

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Policy decides who enters first when both sides wait.
type Policy int

const (
	// ReaderPriority admits readers whenever nobody writes; the writer
	// waits for an idle resource and an empty reader queue.
	ReaderPriority Policy = iota
	// WriterPriority stops admitting readers once the writer waits.
	WriterPriority
)

func (p Policy) String() string {
	if p == WriterPriority {
		return "writer-priority"
	}
	return "reader-priority"
}

// ParsePolicy converts a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reader-priority", "":
		return ReaderPriority, nil
	case "writer-priority":
		return WriterPriority, nil
	default:
		return ReaderPriority, fmt.Errorf("readwriter: unknown policy %q", s)
	}
}

// Resource is the state of the shared resource.
type Resource int

const (
	ResourceIdle Resource = iota
	ResourceReading
	ResourceWriting
)

func (r Resource) String() string {
	switch r {
	case ResourceReading:
		return "reading"
	case ResourceWriting:
		return "writing"
	default:
		return "idle"
	}
}

// ReaderStatus is the state of one reader.
type ReaderStatus int

const (
	ReaderIdle ReaderStatus = iota
	ReaderWaiting
	ReaderReading
)

func (s ReaderStatus) String() string {
	switch s {
	case ReaderWaiting:
		return "waiting"
	case ReaderReading:
		return "reading"
	default:
		return "idle"
	}
}

// WriterStatus is the state of the writer.
type WriterStatus int

const (
	WriterIdle WriterStatus = iota
	WriterWaiting
	WriterWriting
)

func (s WriterStatus) String() string {
	switch s {
	case WriterWaiting:
		return "waiting"
	case WriterWriting:
		return "writing"
	default:
		return "idle"
	}
}

// Reader is one reader actor.
type Reader struct {
	ID      int
	Name    string
	Status  ReaderStatus
	Actions int
}

// Writer is the writer actor.
type Writer struct {
	ID      int
	Name    string
	Status  WriterStatus
	Actions int
}

// Scenario implements the readers/writer tick resolver.
type Scenario struct {
	cfg      config.ReadWriterConfig
	runtime  core.RuntimeConfig
	src      sim.Source
	injected bool

	policy   Policy
	resource Resource
	readers  []Reader
	writer   Writer

	journal *sim.Journal
	state   core.SimState
}

func init() {
	registry.Register(registry.Info{
		ID:      "readwriter",
		Title:   "Readers / Writer",
		Summary: "shared reads, exclusive writes, two priority policies",
	}, func(opts registry.Options) (registry.Scenario, error) {
		cfg, err := config.LoadReadWriter(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// New creates a readers/writer scenario.
func New(cfg config.ReadWriterConfig) (*Scenario, error) {
	policy, err := ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	s := &Scenario{cfg: cfg, policy: policy}
	s.Reset(core.DefaultConfig())
	return s, nil
}

// UseSource replaces the random source. It survives Reset.
func (s *Scenario) UseSource(src sim.Source) {
	s.src = src
	s.injected = src != nil
}

// ID returns the scenario identifier.
func (s *Scenario) ID() string { return "readwriter" }

// Title returns the display name.
func (s *Scenario) Title() string { return "Readers / Writer" }

// Reset idles the resource and every actor. The policy is kept.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.runtime = cfg
	if !s.injected {
		s.src = sim.NewSeeded(cfg.Seed)
	}

	s.resource = ResourceIdle
	s.readers = make([]Reader, s.cfg.Readers)
	for i := range s.readers {
		s.readers[i] = Reader{ID: i + 1, Name: fmt.Sprintf("R%d", i+1)}
	}
	s.writer = Writer{ID: s.cfg.Readers + 1, Name: "Writer"}

	s.journal = sim.NewJournal(s.cfg.Timing.LogCap)
	s.state = core.SimState{Mode: s.policy.String()}
}

// Step resolves one tick: departures first, then a grant, then an arrival.
func (s *Scenario) Step() core.StepResult {
	if s.state.Stopped() {
		return core.StepResult{State: s.state}
	}
	s.state.Tick++

	acted := s.depart() || s.grant() || s.arrive()
	if acted {
		s.state.Actions++
	}
	return core.StepResult{State: s.state, Acted: acted}
}

// depart lets each active reader leave and the writer finish, each with
// the configured chance. It reports whether anyone left.
func (s *Scenario) depart() bool {
	var left []string

	if s.writer.Status == WriterWriting && s.src.Chance(s.cfg.LeaveChance) {
		s.writer.Status = WriterIdle
		left = append(left, s.writer.Name)
	}
	for i := range s.readers {
		r := &s.readers[i]
		if r.Status == ReaderReading && s.src.Chance(s.cfg.LeaveChance) {
			r.Status = ReaderIdle
			left = append(left, r.Name)
		}
	}
	if len(left) == 0 {
		return false
	}

	s.syncResource()
	detail := "resource " + s.resource.String()
	if n := s.ActiveReaders(); n > 0 {
		detail = fmt.Sprintf("%d still reading", n)
	}
	s.journal.Add(strings.Join(left, ", "), "leave", detail, sim.SeverityInfo)
	return true
}

// grant admits a waiting actor according to the policy.
func (s *Scenario) grant() bool {
	writerWaits := s.writer.Status == WriterWaiting

	if s.policy == WriterPriority && writerWaits {
		if s.resource == ResourceIdle {
			s.startWriting()
			return true
		}
		// New readers stay queued behind the writer until the active ones drain.
		return false
	}

	if s.resource != ResourceWriting {
		if i := s.firstWaitingReader(); i >= 0 {
			s.startReading(i)
			return true
		}
	}

	if writerWaits && s.resource == ResourceIdle {
		s.startWriting()
		return true
	}
	return false
}

// arrive turns an idle actor into a waiting one.
func (s *Scenario) arrive() bool {
	if s.writer.Status == WriterIdle && s.src.Chance(s.cfg.WriterChance) {
		s.writer.Status = WriterWaiting
		s.journal.Add(s.writer.Name, "request", "wants exclusive access", sim.SeverityWarning)
		return true
	}

	var idle []int
	for i, r := range s.readers {
		if r.Status == ReaderIdle {
			idle = append(idle, i)
		}
	}
	i, ok := sim.Choose(s.src, idle)
	if !ok {
		return false
	}
	s.readers[i].Status = ReaderWaiting
	s.journal.Add(s.readers[i].Name, "request", "wants to read", sim.SeverityWarning)
	return true
}

func (s *Scenario) startReading(i int) {
	r := &s.readers[i]
	r.Status = ReaderReading
	r.Actions++
	s.resource = ResourceReading
	s.journal.Add(r.Name, "read", fmt.Sprintf("%d reading", s.ActiveReaders()), sim.SeveritySuccess)
}

func (s *Scenario) startWriting() {
	s.writer.Status = WriterWriting
	s.writer.Actions++
	s.resource = ResourceWriting
	s.journal.Add(s.writer.Name, "write", "exclusive access", sim.SeveritySuccess)
}

func (s *Scenario) firstWaitingReader() int {
	for i, r := range s.readers {
		if r.Status == ReaderWaiting {
			return i
		}
	}
	return -1
}

// syncResource derives the resource state from the active actors.
func (s *Scenario) syncResource() {
	switch {
	case s.writer.Status == WriterWriting:
		s.resource = ResourceWriting
	case s.ActiveReaders() > 0:
		s.resource = ResourceReading
	default:
		s.resource = ResourceIdle
	}
}

// Control handles CycleMode: switch policy and reset.
func (s *Scenario) Control(a core.Action) bool {
	if a != core.ActionCycleMode {
		return false
	}
	if s.policy == ReaderPriority {
		s.policy = WriterPriority
	} else {
		s.policy = ReaderPriority
	}
	s.Reset(s.runtime)
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

// Policy returns the current priority policy.
func (s *Scenario) Policy() Policy { return s.policy }

// Resource returns the shared resource state.
func (s *Scenario) Resource() Resource { return s.resource }

// ActiveReaders returns how many readers are reading.
func (s *Scenario) ActiveReaders() int {
	n := 0
	for _, r := range s.readers {
		if r.Status == ReaderReading {
			n++
		}
	}
	return n
}

// Readers returns a copy of the readers.
func (s *Scenario) Readers() []Reader {
	out := make([]Reader, len(s.readers))
	copy(out, s.readers)
	return out
}

// Writer returns the writer.
func (s *Scenario) Writer() Writer { return s.writer }
