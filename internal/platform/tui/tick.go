// Package tui provides the Bubble Tea integration for synclab.
// It handles the terminal UI loop, input mapping, and scenario orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. Gen identifies the timer run that
// scheduled it; ticks from a stopped run are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// Ticker is the tick timer of one mounted scenario. It is acquired on
// start and released on pause, reset, halt and unmount. Every Start bumps
// the generation so that ticks already in flight become stale.
type Ticker struct {
	gen     int
	running bool
}

// Start begins a new timer run and returns the command for its first tick.
func (t *Ticker) Start(interval time.Duration) tea.Cmd {
	t.gen++
	t.running = true
	return tickCmd(t.gen, interval)
}

// Stop releases the timer. Ticks already scheduled are ignored by Accept.
func (t *Ticker) Stop() {
	if t.running {
		t.gen++
	}
	t.running = false
}

// Running reports whether the timer is held.
func (t *Ticker) Running() bool {
	return t.running
}

// Accept reports whether msg belongs to the current run.
func (t *Ticker) Accept(msg TickMsg) bool {
	return t.running && msg.Gen == t.gen
}

// Next schedules the following tick of the current run.
func (t *Ticker) Next(interval time.Duration) tea.Cmd {
	if !t.running {
		return nil
	}
	return tickCmd(t.gen, interval)
}

func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(now time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: now}
	})
}
