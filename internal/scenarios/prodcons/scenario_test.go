package prodcons

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

func newScenario(t *testing.T, cfg config.ProdConsConfig, src sim.Source) *Scenario {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.UseSource(src)
	s.Reset(core.DefaultConfig())
	return s
}

func TestProducerExample(t *testing.T) {
	s := newScenario(t, config.DefaultProdConsConfig(), &sim.Script{Picks: []int{0}})

	before := s.Snapshot()
	if before.Empty != 8 || before.Full != 0 || before.MutexOwner != "" {
		t.Fatalf("unexpected initial gates %+v", before)
	}

	res := s.Step()
	if !res.Acted {
		t.Fatal("expected the first tick to act")
	}

	snap := s.Snapshot()
	if snap.Empty != 7 || snap.Full != 1 {
		t.Errorf("expected empty=7 full=1, got empty=%d full=%d", snap.Empty, snap.Full)
	}
	if snap.MutexOwner != "" {
		t.Errorf("mutex should be released, owner %q", snap.MutexOwner)
	}
	want := []int{1, 0, 0, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(snap.Slots, want) {
		t.Errorf("expected item in slot 0, got %v", snap.Slots)
	}
	if len(s.Journal()) != 1 || s.Journal()[0].Actor != "P-1" {
		t.Errorf("expected one entry from P-1, got %+v", s.Journal())
	}
}

func TestConsumersBlockedOnEmptyBuffer(t *testing.T) {
	s := newScenario(t, config.DefaultProdConsConfig(), sim.First{})
	s.Step()

	if q := s.Queue(GateFull); !reflect.DeepEqual(q, []string{"C-1", "C-2"}) {
		t.Errorf("expected consumers queued on full, got %v", q)
	}
}

func TestBlockAndWake(t *testing.T) {
	cfg := config.DefaultProdConsConfig()
	cfg.Capacity = 2
	s := newScenario(t, cfg, sim.First{})

	s.Step() // P-1 produces
	s.Step() // settle
	s.Step() // P-1 produces again, buffer full

	if q := s.Queue(GateEmpty); !reflect.DeepEqual(q, []string{"P-2", "P-3"}) {
		t.Fatalf("expected idle producers queued on empty, got %v", q)
	}

	s.Step() // settle
	s.Step() // P-1 blocks, C-1 consumes, empty reopens

	if q := s.Queue(GateEmpty); len(q) != 0 {
		t.Errorf("producers should wake when empty reopens, queue %v", q)
	}
	if got := s.Journal()[0]; got.Actor != "C-1" || got.Action != "consume" {
		t.Errorf("expected C-1 consume, got %+v", got)
	}
	for _, a := range s.Actors() {
		if a.Kind == Producer && a.Status == StatusBlocked {
			t.Errorf("%s still blocked", a.Name)
		}
	}
}

func checkInvariants(t *testing.T, s *Scenario, tick int) {
	t.Helper()
	snap := s.Snapshot()

	occupied := 0
	for _, id := range snap.Slots {
		if id != 0 {
			occupied++
		}
	}
	if occupied != snap.Full {
		t.Fatalf("tick %d: occupied=%d but full=%d", tick, occupied, snap.Full)
	}
	if len(snap.Slots)-occupied != snap.Empty {
		t.Fatalf("tick %d: free=%d but empty=%d", tick, len(snap.Slots)-occupied, snap.Empty)
	}

	// Wait queues mirror blocked statuses exactly.
	for _, g := range []Gate{GateEmpty, GateFull, GateMutex} {
		var blocked []string
		for _, a := range s.Actors() {
			if a.Status == StatusBlocked && a.On == g {
				blocked = append(blocked, a.Name)
			}
		}
		q := s.Queue(g)
		slices.Sort(q)
		slices.Sort(blocked)
		if !slices.Equal(q, blocked) {
			t.Fatalf("tick %d: queue %s=%v but blocked=%v", tick, g, q, blocked)
		}
	}

	if snap.MutexOwner != "" {
		if !snap.Halted {
			t.Fatalf("tick %d: mutex held by %s outside a deadlock", tick, snap.MutexOwner)
		}
		for _, a := range s.Actors() {
			if a.Name == snap.MutexOwner && a.Status != StatusBlocked && a.Status != StatusWorking {
				t.Fatalf("tick %d: owner %s is %s", tick, a.Name, a.Status)
			}
		}
	}
}

func TestInvariantsHold(t *testing.T) {
	for _, order := range []string{"normal", "inverted"} {
		for seed := int64(1); seed <= 20; seed++ {
			cfg := config.DefaultProdConsConfig()
			cfg.Order = order
			s := newScenario(t, cfg, sim.NewSeeded(seed))

			for tick := 0; tick < 300; tick++ {
				s.Step()
				checkInvariants(t, s, tick)
			}
		}
	}
}

func TestInvertedDeadlock(t *testing.T) {
	cfg := config.DefaultProdConsConfig()
	cfg.Order = "inverted"
	// Candidates are P-1..P-3, C-1, C-2; index 3 is C-1 on an empty buffer.
	s := newScenario(t, cfg, &sim.Script{Picks: []int{3}})

	res := s.Step()
	if !res.State.Halted {
		t.Fatal("expected halted after consumer takes mutex on empty buffer")
	}

	snap := s.Snapshot()
	if snap.MutexOwner != "C-1" {
		t.Errorf("expected C-1 to hold the mutex, got %q", snap.MutexOwner)
	}
	if !reflect.DeepEqual(snap.FullQueue, []string{"C-1"}) {
		t.Errorf("expected C-1 queued on full, got %v", snap.FullQueue)
	}
	if len(snap.MutexQueue) != 4 {
		t.Errorf("expected every other actor on the mutex queue, got %v", snap.MutexQueue)
	}
	if e := s.Journal()[0]; e.Severity != sim.SeverityError || e.Action != "deadlock" {
		t.Errorf("expected error entry, got %+v", e)
	}

	for i := 0; i < 10; i++ {
		s.Step()
	}
	if !reflect.DeepEqual(snap, s.Snapshot()) {
		t.Error("halted scenario must not change until reset")
	}
}

func TestSettleOnlyTouchesStatus(t *testing.T) {
	s := newScenario(t, config.DefaultProdConsConfig(), sim.NewSeeded(3))

	for i := 0; i < 200; i++ {
		working := false
		for _, a := range s.Actors() {
			working = working || a.Status == StatusWorking
		}
		before := s.Snapshot()
		res := s.Step()
		if !working {
			continue
		}
		after := s.Snapshot()
		if res.Acted {
			t.Fatalf("tick %d: settle tick must not act", i)
		}
		for j := range before.Actors {
			if before.Actors[j].Status == "working" {
				before.Actors[j].Status = "idle"
			}
		}
		before.Tick, before.History, after.History = after.Tick, nil, nil
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("tick %d: settle changed more than statuses:\n%+v\n%+v", i, before, after)
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	rc := core.DefaultConfig()
	rc.Seed = 5

	used, _ := New(config.DefaultProdConsConfig())
	used.Reset(rc)
	for i := 0; i < 123; i++ {
		used.Step()
	}
	used.Reset(rc)

	fresh, _ := New(config.DefaultProdConsConfig())
	fresh.Reset(rc)

	if !reflect.DeepEqual(used.Snapshot(), fresh.Snapshot()) {
		t.Errorf("reset differs from fresh:\n%+v\n%+v", used.Snapshot(), fresh.Snapshot())
	}
}

func TestCycleModeResets(t *testing.T) {
	s := newScenario(t, config.DefaultProdConsConfig(), sim.First{})
	s.Step()

	if !s.Control(core.ActionCycleMode) {
		t.Fatal("CycleMode should be handled")
	}
	if s.Order() != OrderInverted || s.State().Mode != "inverted" {
		t.Errorf("expected inverted order, got %s", s.Order())
	}
	if snap := s.Snapshot(); snap.Tick != 0 || snap.Full != 0 || snap.LogSize != 0 {
		t.Errorf("mode change should reset, got %+v", snap)
	}

	s.Control(core.ActionCycleMode)
	if s.Order() != OrderNormal {
		t.Error("second CycleMode should restore normal order")
	}
}

func TestForceDeadlock(t *testing.T) {
	s := newScenario(t, config.DefaultProdConsConfig(), sim.First{})

	if !s.Control(core.ActionForceDeadlock) {
		t.Fatal("force deadlock on an empty buffer should succeed")
	}
	snap := s.Snapshot()
	if !snap.Halted || snap.Order != "inverted" || snap.MutexOwner != "C-1" {
		t.Errorf("unexpected state after forced deadlock %+v", snap)
	}
	if s.Control(core.ActionForceDeadlock) {
		t.Error("force deadlock on a halted scenario should be refused")
	}

	s.Reset(core.DefaultConfig())
	s.Step() // one item: neither empty nor full
	s.Step()
	if s.Control(core.ActionForceDeadlock) {
		t.Error("force deadlock should be refused when both gates are open")
	}
}

func TestRender(t *testing.T) {
	cfg := config.DefaultProdConsConfig()
	cfg.Order = "inverted"
	s := newScenario(t, cfg, &sim.Script{Picks: []int{3}})
	s.Step()

	screen := core.NewScreen(100, 40)
	s.Render(screen)
	out := screen.String()
	for _, want := range []string{"Producer / Consumer", "DEADLOCK", "[mutex held by C-1]", "queue: C-1", "blocked:mutex"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestParseOrder(t *testing.T) {
	if _, err := ParseOrder("sideways"); err == nil {
		t.Error("expected error for unknown order")
	}
	if o, _ := ParseOrder("inverted"); o != OrderInverted {
		t.Error("expected inverted")
	}
}
