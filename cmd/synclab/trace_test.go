package main

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func mustCreate(t *testing.T, id, mode string) registry.Scenario {
	t.Helper()
	scn, err := createScenario(id, mode)
	if err != nil {
		t.Fatalf("createScenario(%s) failed: %v", id, err)
	}
	return scn
}

func TestTraceForcedDeadlock(t *testing.T) {
	scn := mustCreate(t, "philosophers", "naive")

	report := traceScenario(scn, traceOptions{Ticks: 50, DeadlockAt: 1, Seed: 1}, quietLogger())

	if report.Outcome != "deadlock" {
		t.Errorf("expected deadlock outcome, got %s", report.Outcome)
	}
	if len(report.Entries) == 0 {
		t.Fatal("expected journal entries")
	}
	last := report.Entries[len(report.Entries)-1]
	if last.Severity != sim.SeverityError {
		t.Errorf("expected the last entry to be an error, got %+v", last)
	}
	if report.Final == nil {
		t.Error("expected a final snapshot")
	}
}

func TestTraceCounterFinishes(t *testing.T) {
	scn := mustCreate(t, "counter", "safe")

	report := traceScenario(scn, traceOptions{Ticks: 1000, Seed: 7}, quietLogger())

	if report.Outcome != "finished" {
		t.Fatalf("expected finished outcome, got %s after %d ticks", report.Outcome, report.Ticks)
	}
	if report.Mode != "safe" {
		t.Errorf("expected mode safe, got %s", report.Mode)
	}
	for i := 1; i < len(report.Entries); i++ {
		if report.Entries[i].Seq <= report.Entries[i-1].Seq {
			t.Fatalf("entries out of order at %d: %d after %d", i, report.Entries[i].Seq, report.Entries[i-1].Seq)
		}
		if report.Entries[i].Tick < report.Entries[i-1].Tick {
			t.Fatalf("ticks out of order at %d", i)
		}
	}
}

func TestTraceReproducible(t *testing.T) {
	a := traceScenario(mustCreate(t, "prodcons", ""), traceOptions{Ticks: 80, Seed: 42}, quietLogger())
	b := traceScenario(mustCreate(t, "prodcons", ""), traceOptions{Ticks: 80, Seed: 42}, quietLogger())

	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical traces for the same seed")
	}
}

func TestTraceStopsAtTickLimit(t *testing.T) {
	report := traceScenario(mustCreate(t, "fruit", ""), traceOptions{Ticks: 12, Seed: 3}, quietLogger())

	if report.Ticks != 12 {
		t.Errorf("expected 12 ticks, got %d", report.Ticks)
	}
	if report.Outcome != "stopped" {
		t.Errorf("expected stopped outcome, got %s", report.Outcome)
	}
}

func TestCreateScenarioErrors(t *testing.T) {
	if _, err := createScenario("nope", ""); err == nil {
		t.Error("expected error for unknown scenario")
	}
	if _, err := createScenario("philosophers", "greedy"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestWriteTraceText(t *testing.T) {
	var buf bytes.Buffer
	writeTraceText(&buf, traceReport{
		Scenario: "philosophers",
		Mode:     "naive",
		Seed:     9,
		Ticks:    3,
		Actions:  2,
		Outcome:  "deadlock",
		Entries: []traceEntry{
			{Tick: 1, Seq: 1, Actor: "P0", Action: "hungry", Severity: sim.SeverityInfo},
			{Tick: 3, Seq: 2, Actor: "system", Action: "deadlock", Detail: "all hold one fork", Severity: sim.SeverityError},
		},
	})

	out := buf.String()
	for _, want := range []string{"trace philosophers  mode=naive  seed=9", "P0", "all hold one fork  [error]", "3 ticks, 2 actions: deadlock"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
