package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
	"github.com/vovakirdan/synclab/internal/storage"
)

// fakeScenario halts after haltAfter ticks and records what it was sent.
type fakeScenario struct {
	state      core.SimState
	haltAfter  int
	resets     int
	controls   []core.Action
	deadlockOK bool
	singleMode bool
	lastConfig core.RuntimeConfig
}

func (f *fakeScenario) ID() string    { return "fake" }
func (f *fakeScenario) Title() string { return "Fake" }

func (f *fakeScenario) Reset(cfg core.RuntimeConfig) {
	f.resets++
	f.lastConfig = cfg
	f.state = core.SimState{Mode: f.state.Mode}
}

func (f *fakeScenario) Step() core.StepResult {
	if f.state.Stopped() {
		return core.StepResult{State: f.state}
	}
	f.state.Tick++
	f.state.Actions++
	if f.haltAfter > 0 && f.state.Tick >= f.haltAfter {
		f.state.Halted = true
	}
	return core.StepResult{State: f.state, Acted: true}
}

func (f *fakeScenario) Control(a core.Action) bool {
	f.controls = append(f.controls, a)
	switch a {
	case core.ActionCycleMode:
		if f.singleMode {
			return false
		}
		f.state = core.SimState{Mode: "other"}
		return true
	case core.ActionForceDeadlock:
		if !f.deadlockOK {
			return false
		}
		f.state.Halted = true
		return true
	}
	return false
}

func (f *fakeScenario) Interval() time.Duration {
	return sim.Scale(100*time.Millisecond, f.lastConfig.Speed)
}

func (f *fakeScenario) Render(dst *core.Screen) {
	dst.DrawTextColor(0, 0, "fake scenario", core.ColorDefault)
}

func (f *fakeScenario) State() core.SimState { return f.state }
func (f *fakeScenario) Journal() []sim.Entry { return nil }

func newTestModel(t *testing.T, scn *fakeScenario, store *storage.Store) Model {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 5
	return NewModel(scn, store, cfg, ModelOptions{Speed: config.SpeedNormal})
}

func press(t *testing.T, m Model, a core.Action) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.handleAction(a)
	return next.(Model), cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(TickMsg{Gen: m.ticker.gen})
	return next.(Model), cmd
}

func TestModelStartsPaused(t *testing.T) {
	scn := &fakeScenario{}
	m := newTestModel(t, scn, nil)

	if m.Running() {
		t.Error("expected model to start paused")
	}
	if scn.resets != 1 {
		t.Errorf("expected one reset on mount, got %d", scn.resets)
	}
	if m.Init() != nil {
		t.Error("expected no command on Init")
	}
}

func TestModelToggleAndTick(t *testing.T) {
	scn := &fakeScenario{}
	m := newTestModel(t, scn, nil)

	m, cmd := press(t, m, core.ActionToggleRun)
	if !m.Running() || cmd == nil {
		t.Fatal("expected space to start the timer")
	}

	m, cmd = tick(t, m)
	if scn.state.Tick != 1 {
		t.Errorf("expected 1 tick, got %d", scn.state.Tick)
	}
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}

	m, _ = press(t, m, core.ActionToggleRun)
	if m.Running() {
		t.Error("expected space to pause")
	}
	stale := TickMsg{Gen: m.ticker.gen - 1}
	next, _ := m.Update(stale)
	m = next.(Model)
	if scn.state.Tick != 1 {
		t.Errorf("expected stale tick to be ignored, got %d ticks", scn.state.Tick)
	}
}

func TestModelSingleStepOnlyWhilePaused(t *testing.T) {
	scn := &fakeScenario{}
	m := newTestModel(t, scn, nil)

	m, _ = press(t, m, core.ActionStep)
	m, _ = press(t, m, core.ActionStep)
	if scn.state.Tick != 2 {
		t.Errorf("expected 2 ticks from single steps, got %d", scn.state.Tick)
	}
	if m.Running() {
		t.Error("expected single step to leave the timer stopped")
	}

	m, _ = press(t, m, core.ActionToggleRun)
	press(t, m, core.ActionStep)
	if scn.state.Tick != 2 {
		t.Errorf("expected step to be ignored while running, got %d ticks", scn.state.Tick)
	}
}

func TestModelReleasesTimerOnHalt(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	scn := &fakeScenario{haltAfter: 2, state: core.SimState{Mode: "naive"}}
	m := newTestModel(t, scn, store)

	m, _ = press(t, m, core.ActionToggleRun)
	m, _ = tick(t, m)
	m, cmd := tick(t, m)

	if !scn.state.Halted {
		t.Fatal("expected scenario to halt")
	}
	if m.Running() || cmd != nil {
		t.Error("expected the timer to be released on halt")
	}

	m, cmd = press(t, m, core.ActionToggleRun)
	if m.Running() || cmd != nil {
		t.Error("expected start to be refused once halted")
	}
	if !strings.Contains(m.flash, "reset") {
		t.Errorf("expected a hint to reset, got %q", m.flash)
	}

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Outcome != storage.OutcomeDeadlock || runs[0].Ticks != 2 || runs[0].Mode != "naive" {
		t.Errorf("unexpected run record %+v", runs[0])
	}

	// Leaving must not record the same run twice.
	m, _ = press(t, m, core.ActionBack)
	runs, _ = store.RecentRuns("fake", 10)
	if len(runs) != 1 {
		t.Errorf("expected still 1 recorded run, got %d", len(runs))
	}
	if !m.BackToMenu() {
		t.Error("expected esc to return to the menu")
	}
}

func TestModelResetStopsTimer(t *testing.T) {
	scn := &fakeScenario{}
	m := newTestModel(t, scn, nil)

	m, _ = press(t, m, core.ActionToggleRun)
	m, _ = tick(t, m)
	m, _ = press(t, m, core.ActionReset)

	if m.Running() {
		t.Error("expected reset to release the timer")
	}
	if scn.resets != 2 || scn.state.Tick != 0 {
		t.Errorf("expected a fresh scenario, got resets=%d tick=%d", scn.resets, scn.state.Tick)
	}
	if scn.lastConfig.Seed != 5 {
		t.Errorf("expected fixed seed to survive reset, got %d", scn.lastConfig.Seed)
	}
}

func TestModelForwardsIntents(t *testing.T) {
	scn := &fakeScenario{}
	m := newTestModel(t, scn, nil)

	m, _ = press(t, m, core.ActionForceDeadlock)
	if m.flash == "" {
		t.Error("expected a message when deadlock injection is refused")
	}

	scn.deadlockOK = true
	m, _ = press(t, m, core.ActionToggleRun)
	m, _ = press(t, m, core.ActionForceDeadlock)
	if !scn.state.Halted {
		t.Error("expected forced deadlock to halt the scenario")
	}
	if m.Running() {
		t.Error("expected forced deadlock to release the timer")
	}

	press(t, m, core.ActionCycleMode)
	if scn.state.Mode != "other" {
		t.Errorf("expected mode to change, got %s", scn.state.Mode)
	}
	want := []core.Action{core.ActionForceDeadlock, core.ActionForceDeadlock, core.ActionCycleMode}
	if len(scn.controls) != len(want) {
		t.Fatalf("expected %d intents, got %v", len(want), scn.controls)
	}
}

func TestModelCycleModeRefused(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	scn := &fakeScenario{singleMode: true}
	m := newTestModel(t, scn, store)

	m, _ = press(t, m, core.ActionToggleRun)
	m, _ = tick(t, m)
	m, _ = tick(t, m)
	m, _ = press(t, m, core.ActionCycleMode)

	if !m.Running() {
		t.Error("expected a refused mode change to keep the timer running")
	}
	if m.flash == "" {
		t.Error("expected a message when the mode cannot change")
	}
	if scn.state.Tick != 2 {
		t.Errorf("expected the run to continue at tick 2, got %d", scn.state.Tick)
	}

	m, _ = tick(t, m)
	press(t, m, core.ActionQuit)

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Ticks != 3 {
		t.Errorf("expected the run to be recorded at tick 3, got %d", runs[0].Ticks)
	}
}

func TestModelCycleModeRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	scn := &fakeScenario{state: core.SimState{Mode: "naive"}}
	m := newTestModel(t, scn, store)

	m, _ = press(t, m, core.ActionToggleRun)
	m, _ = tick(t, m)
	m, _ = press(t, m, core.ActionCycleMode)
	if m.Running() {
		t.Error("expected a mode change to release the timer")
	}

	m, _ = press(t, m, core.ActionStep)
	press(t, m, core.ActionQuit)

	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 2 {
		t.Fatalf("expected one run per mode, got %d", len(runs))
	}
	if runs[1].Mode != "naive" || runs[0].Mode != "other" {
		t.Errorf("unexpected modes %q then %q", runs[1].Mode, runs[0].Mode)
	}
}

func TestModelSpeed(t *testing.T) {
	scn := &fakeScenario{}
	m := newTestModel(t, scn, nil)

	if got := m.interval(); got != 100*time.Millisecond {
		t.Fatalf("expected 100ms at normal speed, got %s", got)
	}

	m, _ = press(t, m, core.ActionFaster)
	if m.Speed() != config.SpeedFast {
		t.Errorf("expected fast, got %s", m.Speed())
	}
	if got := m.interval(); got != 50*time.Millisecond {
		t.Errorf("expected 50ms at fast speed, got %s", got)
	}

	m, _ = press(t, m, core.ActionToggleRun)
	gen := m.ticker.gen
	m, cmd := press(t, m, core.ActionSlower)
	if cmd == nil || m.ticker.gen == gen {
		t.Error("expected a speed change to restart a running timer")
	}
	if got := m.interval(); got != 100*time.Millisecond {
		t.Errorf("expected 100ms after slowing down, got %s", got)
	}
}

func TestModelView(t *testing.T) {
	scn := &fakeScenario{}
	m := newTestModel(t, scn, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"fake scenario", "PAUSED", "speed normal"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m, _ = press(t, m, core.ActionQuit)
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}
