package registry

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

type stubScenario struct{ id string }

func (s *stubScenario) ID() string { return s.id }
func (s *stubScenario) Title() string { return "Stub" }
func (s *stubScenario) Reset(core.RuntimeConfig) {}
func (s *stubScenario) Step() core.StepResult { return core.StepResult{} }
func (s *stubScenario) Control(core.Action) bool { return false }
func (s *stubScenario) Interval() time.Duration { return time.Second }
func (s *stubScenario) Render(*core.Screen) {}
func (s *stubScenario) State() core.SimState { return core.SimState{} }
func (s *stubScenario) Journal() []sim.Entry { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register(Info{ID: "zz-stub", Title: "Stub"}, func(Options) (Scenario, error) {
		return &stubScenario{id: "zz-stub"}, nil
	})

	if !Exists("zz-stub") {
		t.Fatal("expected zz-stub to be registered")
	}
	s, err := Create("zz-stub", Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.ID() != "zz-stub" {
		t.Errorf("expected id zz-stub, got %s", s.ID())
	}
	if info, ok := Lookup("zz-stub"); !ok || info.Title != "Stub" {
		t.Errorf("unexpected lookup result %+v, %v", info, ok)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) (Scenario, error) { return &stubScenario{}, nil }
	Register(Info{ID: "zz-dup"}, f)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(Info{ID: "zz-dup"}, f)
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("zz-missing", Options{}); err == nil {
		t.Error("expected error for unknown scenario")
	}

	boom := errors.New("boom")
	Register(Info{ID: "zz-fail"}, func(Options) (Scenario, error) { return nil, boom })
	if _, err := Create("zz-fail", Options{}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped factory error, got %v", err)
	}
}

func TestListSorted(t *testing.T) {
	f := func(Options) (Scenario, error) { return &stubScenario{}, nil }
	Register(Info{ID: "zz-b"}, f)
	Register(Info{ID: "zz-a"}, f)

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("list not sorted: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
}

type cyclingScenario struct {
	stubScenario
	modes []string
	i     int
}

func (s *cyclingScenario) Control(a core.Action) bool {
	if a != core.ActionCycleMode || len(s.modes) == 0 {
		return false
	}
	s.i = (s.i + 1) % len(s.modes)
	return true
}

func (s *cyclingScenario) State() core.SimState {
	if len(s.modes) == 0 {
		return core.SimState{}
	}
	return core.SimState{Mode: s.modes[s.i]}
}

func TestSelectMode(t *testing.T) {
	s := &cyclingScenario{stubScenario: stubScenario{id: "zz-cycle"}, modes: []string{"unsafe", "mutex", "local"}}

	if err := SelectMode(s, "local"); err != nil {
		t.Fatalf("SelectMode failed: %v", err)
	}
	if got := s.State().Mode; got != "local" {
		t.Errorf("expected mode local, got %s", got)
	}

	if err := SelectMode(s, ""); err != nil || s.State().Mode != "local" {
		t.Errorf("expected empty mode to keep local, got %s (%v)", s.State().Mode, err)
	}

	err := SelectMode(s, "atomic")
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	for _, m := range []string{"unsafe", "mutex", "local"} {
		if !strings.Contains(err.Error(), m) {
			t.Errorf("expected error to list mode %s, got %v", m, err)
		}
	}
}

func TestSelectModeWithoutCycling(t *testing.T) {
	s := &stubScenario{id: "zz-fixed"}
	if err := SelectMode(s, "fast"); err == nil {
		t.Error("expected error when the scenario cannot cycle")
	}
}
