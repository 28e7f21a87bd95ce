package core

// Action represents a user intent, abstracted from physical key presses.
// The presentation layer only ever talks to a simulation through these.
type Action int

const (
	ActionNone          Action = iota
	ActionToggleRun            // Space - start/pause the tick timer
	ActionStep                 // N - resolve exactly one tick while paused
	ActionReset                // R - discard all state and reinitialize
	ActionCycleMode            // M - next strategy / acquisition order / policy
	ActionForceDeadlock        // D - manual fault injection
	ActionFaster               // + - shorten the tick interval
	ActionSlower               // - - lengthen the tick interval
	ActionBack                 // Esc, B - leave the scenario
	ActionQuit                 // Q, Ctrl+C - exit session
	ActionUp                   // Up, K - menu navigation
	ActionDown                 // Down, J - menu navigation
	ActionConfirm              // Enter - menu selection
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionToggleRun:
		return "ToggleRun"
	case ActionStep:
		return "Step"
	case ActionReset:
		return "Reset"
	case ActionCycleMode:
		return "CycleMode"
	case ActionForceDeadlock:
		return "ForceDeadlock"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	default:
		return "Unknown"
	}
}

// Intent reports whether the action is one a simulation itself handles
// (as opposed to navigation or timer control owned by the platform).
func (a Action) Intent() bool {
	return a == ActionCycleMode || a == ActionForceDeadlock
}
