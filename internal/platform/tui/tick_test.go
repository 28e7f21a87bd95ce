package tui

import (
	"testing"
	"time"
)

func TestTickerStartStop(t *testing.T) {
	var tk Ticker

	if tk.Running() {
		t.Fatal("expected a new ticker to be stopped")
	}
	if cmd := tk.Next(time.Second); cmd != nil {
		t.Error("expected no command from a stopped ticker")
	}

	if cmd := tk.Start(time.Second); cmd == nil {
		t.Fatal("expected Start to return a tick command")
	}
	first := TickMsg{Gen: tk.gen}
	if !tk.Accept(first) {
		t.Error("expected current generation to be accepted")
	}

	tk.Stop()
	if tk.Running() {
		t.Error("expected ticker to be stopped")
	}
	if tk.Accept(first) {
		t.Error("expected ticks to be rejected after Stop")
	}
}

func TestTickerDropsStaleTicks(t *testing.T) {
	var tk Ticker

	tk.Start(time.Second)
	stale := TickMsg{Gen: tk.gen}
	tk.Stop()
	tk.Start(time.Second)

	if tk.Accept(stale) {
		t.Error("expected tick from a previous run to be stale")
	}
	if !tk.Accept(TickMsg{Gen: tk.gen}) {
		t.Error("expected tick from the current run to be accepted")
	}
}

func TestTickerRestartInvalidates(t *testing.T) {
	var tk Ticker

	tk.Start(time.Second)
	before := TickMsg{Gen: tk.gen}
	tk.Start(time.Millisecond)

	if tk.Accept(before) {
		t.Error("expected restart to invalidate in-flight ticks")
	}
	if cmd := tk.Next(time.Millisecond); cmd == nil {
		t.Error("expected Next to schedule while running")
	}
}
