// Package wordcount shows two threads counting words in their own input
// into a shared total: unsynchronized, under a mutex, or with thread-local
// counters summed at join.
package wordcount

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Mode is the counting strategy.
type Mode int

const (
	ModeUnsafe Mode = iota // Shared counter, no lock
	ModeMutex              // Shared counter behind a mutex
	ModeLocal              // Per-thread counters, summed at join
)

var modeNames = []string{"unsafe", "mutex", "local"}

func (m Mode) String() string { return modeNames[m] }

// ParseMode converts a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return ModeMutex, fmt.Errorf("wordcount: unknown mode %q", s)
}

// Status of a scanning thread.
type Status int

const (
	StatusIdle Status = iota
	StatusScanning
	StatusCritical // Inside the mutex, updating the shared counter
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusScanning:
		return "scanning"
	case StatusCritical:
		return "critical"
	case StatusDone:
		return "done"
	default:
		return "idle"
	}
}

// Thread scans one input.
type Thread struct {
	ID     int
	Name   string
	Text   []rune
	Cursor int
	Local  int
	Status Status
}

func (t Thread) done() bool { return t.Cursor >= len(t.Text) }

// Scenario implements the word count tick resolver.
type Scenario struct {
	cfg      config.WordCountConfig
	runtime  core.RuntimeConfig
	src      sim.Source
	injected bool

	mode       Mode
	threads    []Thread
	global     int
	collisions int
	lost       int
	collided   bool // A collision happened on the last tick

	journal *sim.Journal
	state   core.SimState
}

func init() {
	registry.Register(registry.Info{
		ID:      "wordcount",
		Title:   "Word Count",
		Summary: "two threads, one shared total, three fixes",
	}, func(opts registry.Options) (registry.Scenario, error) {
		cfg, err := config.LoadWordCount(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// New creates a word count scenario.
func New(cfg config.WordCountConfig) (*Scenario, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	if len(cfg.Texts) != 2 {
		return nil, fmt.Errorf("wordcount: need 2 texts, got %d", len(cfg.Texts))
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
func (s *Scenario) ID() string { return "wordcount" }

// Title returns the display name.
func (s *Scenario) Title() string { return "Word Count" }

// Reset rewinds both cursors and zeroes every counter. The mode is kept.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.runtime = cfg
	if !s.injected {
		s.src = sim.NewSeeded(cfg.Seed)
	}

	s.threads = make([]Thread, len(s.cfg.Texts))
	for i, text := range s.cfg.Texts {
		s.threads[i] = Thread{ID: i + 1, Name: fmt.Sprintf("T%d", i+1), Text: []rune(text)}
	}
	s.global, s.collisions, s.lost = 0, 0, 0
	s.collided = false

	s.journal = sim.NewJournal(s.cfg.Timing.LogCap)
	s.state = core.SimState{Mode: s.mode.String()}
}

// Step advances every unfinished thread by one character.
func (s *Scenario) Step() core.StepResult {
	if s.state.Stopped() {
		return core.StepResult{State: s.state}
	}
	s.state.Tick++
	s.collided = false

	if s.allDone() {
		s.join()
		return core.StepResult{State: s.state}
	}

	// Both threads were running into this tick: unsynchronized updates may collide.
	concurrent := true
	for _, t := range s.threads {
		concurrent = concurrent && !t.done()
	}

	var found []string
	for i := range s.threads {
		t := &s.threads[i]
		if t.done() {
			t.Status = StatusDone
			continue
		}
		t.Status = StatusScanning
		end := EndsWord(t.Text, t.Cursor)
		word := wordBefore(t.Text, t.Cursor)
		t.Cursor++
		if end {
			found = append(found, fmt.Sprintf("%s:%q", t.Name, word))
			s.count(t, concurrent)
		}
		if t.done() && t.Status == StatusScanning {
			t.Status = StatusDone
		}
	}

	if len(found) > 0 {
		s.logFound(found)
	}
	s.state.Actions++
	return core.StepResult{State: s.state, Acted: true}
}

// count records one word for t according to the mode.
func (s *Scenario) count(t *Thread, concurrent bool) {
	switch s.mode {
	case ModeLocal:
		t.Local++
	case ModeMutex:
		t.Status = StatusCritical
		s.global++
	default:
		if concurrent && s.src.Chance(s.cfg.CollisionChance) {
			s.collided = true
			s.collisions++
			if s.src.Chance(s.cfg.LossChance) {
				s.lost++
				return
			}
		}
		s.global++
	}
}

func (s *Scenario) logFound(found []string) {
	sev := sim.SeverityInfo
	detail := fmt.Sprintf("total=%d", s.global)
	if s.mode == ModeLocal {
		detail = fmt.Sprintf("local=%d+%d", s.threads[0].Local, s.threads[1].Local)
	}
	if s.collided {
		sev = sim.SeverityWarning
		detail += " (collision)"
	}
	s.journal.Add(strings.Join(found, " "), "word", detail, sev)
}

// join finishes the run; local counters are summed here.
func (s *Scenario) join() {
	for i := range s.threads {
		s.threads[i].Status = StatusDone
	}
	if s.mode == ModeLocal {
		for _, t := range s.threads {
			s.global += t.Local
		}
	}
	s.state.Finished = true

	sev := sim.SeveritySuccess
	if s.global != s.Expected() {
		sev = sim.SeverityError
	}
	s.journal.Add("main", "join", fmt.Sprintf("counted %d, expected %d", s.global, s.Expected()), sev)
}

func (s *Scenario) allDone() bool {
	for _, t := range s.threads {
		if !t.done() {
			return false
		}
	}
	return true
}

// Control handles CycleMode: unsafe -> mutex -> local, resetting each time.
func (s *Scenario) Control(a core.Action) bool {
	if a != core.ActionCycleMode {
		return false
	}
	s.mode = (s.mode + 1) % Mode(len(modeNames))
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

// Mode returns the counting strategy.
func (s *Scenario) Mode() Mode { return s.mode }

// Total returns the shared counter.
func (s *Scenario) Total() int { return s.global }

// Expected returns the true number of words in both inputs.
func (s *Scenario) Expected() int {
	n := 0
	for _, t := range s.threads {
		n += CountWords(string(t.Text))
	}
	return n
}

// Threads returns a copy of both threads.
func (s *Scenario) Threads() []Thread {
	out := make([]Thread, len(s.threads))
	copy(out, s.threads)
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// EndsWord reports whether a word ends at index i: either text[i] is a
// separator following a word character, or text[i] is the last rune and a
// word character.
func EndsWord(text []rune, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	if isWordRune(text[i]) {
		return i == len(text)-1
	}
	return i > 0 && isWordRune(text[i-1])
}

// CountWords counts the words EndsWord finds in text.
func CountWords(text string) int {
	runes := []rune(text)
	n := 0
	for i := range runes {
		if EndsWord(runes, i) {
			n++
		}
	}
	return n
}

// wordBefore returns the word that ends at index i.
func wordBefore(text []rune, i int) string {
	end := i
	if i < len(text) && isWordRune(text[i]) {
		end = i + 1
	}
	start := end
	for start > 0 && isWordRune(text[start-1]) {
		start--
	}
	return string(text[start:end])
}
