package core

// RuntimeConfig contains configuration passed to scenarios on Reset.
// Scenarios use it to adapt to the screen and to seed their randomness.
type RuntimeConfig struct {
	ScreenW int     // Screen width in characters
	ScreenH int     // Screen height in characters
	Seed    int64   // RNG seed for reproducible runs
	Speed   float64 // Tick interval multiplier (1.0 = configured interval)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Speed:   1.0,
	}
}

// SimState is the part of a simulation the platform needs to drive it.
type SimState struct {
	Tick     int    // Ticks resolved since the last reset
	Actions  int    // Ticks that committed a state transition
	Halted   bool   // Deadlock detected; only Reset recovers
	Finished bool   // Bounded scenario ran to completion
	Mode     string // Current strategy / mode label
}

// Stopped reports whether the simulation can make no further progress.
func (s SimState) Stopped() bool {
	return s.Halted || s.Finished
}

// Outcome classifies how a run ended for reporting.
func (s SimState) Outcome() string {
	switch {
	case s.Halted:
		return "deadlock"
	case s.Finished:
		return "finished"
	default:
		return "stopped"
	}
}

// StepResult is returned by Scenario.Step() after each tick.
type StepResult struct {
	State SimState
	// Acted is true when the tick committed a transition (not a settle
	// or a stall).
	Acted bool
}
