package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/storage"
)

func init() {
	registry.Register(registry.Info{ID: "fake", Title: "Fake", Summary: "a scenario for tests"},
		func(registry.Options) (registry.Scenario, error) {
			return &fakeScenario{state: core.SimState{Mode: "plain"}}, nil
		})
}

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	if !strings.Contains(m.View(), "Fake") {
		t.Error("expected registered scenario in the menu")
	}

	next := send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}).(MenuModel)
	if next.Selected() == nil || next.Selected().ID != "fake" {
		t.Errorf("expected fake to be selected, got %+v", next.Selected())
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	next := send(t, m, tea.KeyMsg{Type: tea.KeyTab}).(MenuModel)
	if !next.WantsHistory() {
		t.Error("expected tab to request the history")
	}

	next = send(t, m, runeKey('q')).(MenuModel)
	if !next.IsQuitting() {
		t.Error("expected q to quit")
	}
}

func TestSessionMountsAndUnmounts(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s := NewSessionModel(store, core.DefaultConfig(), SessionOptions{Username: "alice"})
	s = send(t, s, tea.KeyMsg{Type: tea.KeyEnter}).(SessionModel)
	if s.current != screenScenario || s.scenario == nil {
		t.Fatal("expected enter to mount the selected scenario")
	}
	if s.scenario.Scenario().ID() != "fake" {
		t.Errorf("expected fake scenario, got %s", s.scenario.Scenario().ID())
	}

	s = send(t, s, runeKey(' '), runeKey('n')).(SessionModel)
	if !s.scenario.Running() {
		t.Fatal("expected the scenario timer to run")
	}

	s = send(t, s, tea.KeyMsg{Type: tea.KeyEsc}).(SessionModel)
	if s.current != screenMenu || s.scenario != nil {
		t.Fatal("expected esc to unmount the scenario")
	}

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no run recorded before any tick, got %d", len(runs))
	}
}

func TestSessionRecordsRunOnLeave(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s := NewSessionModel(store, core.DefaultConfig(), SessionOptions{Username: "alice"})
	s = send(t, s, tea.KeyMsg{Type: tea.KeyEnter}, runeKey('n'), runeKey('n'), runeKey('n')).(SessionModel)
	s = send(t, s, tea.KeyMsg{Type: tea.KeyEsc}).(SessionModel)

	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	r := runs[0]
	if r.Ticks != 3 || r.Outcome != storage.OutcomeStopped || r.Session != "alice" || r.Mode != "plain" {
		t.Errorf("unexpected run record %+v", r)
	}

	s = send(t, s, tea.KeyMsg{Type: tea.KeyTab}).(SessionModel)
	if s.current != screenHistory || s.history.Rows() != 1 {
		t.Fatalf("expected history with 1 row, got screen %d", s.current)
	}
	s = send(t, s, tea.KeyMsg{Type: tea.KeyEsc}).(SessionModel)
	if s.current != screenMenu {
		t.Error("expected esc to leave the history")
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	h := NewHistoryModel(nil, 80, 24)
	if !strings.Contains(h.View(), "unavailable") {
		t.Error("expected a notice when the history is unavailable")
	}

	h = send(t, h, tea.KeyMsg{Type: tea.KeyTab}).(HistoryModel)
	if h.cursor != 1 {
		t.Errorf("expected tab to move to the next filter, got %d", h.cursor)
	}
}
