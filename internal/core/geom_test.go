package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 6).Inset(1)
	if r != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", r)
	}

	// Insetting past the size collapses to zero, never negative
	tiny := NewRect(0, 0, 3, 3).Inset(2)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset(2) of 3x3 should collapse, got %dx%d", tiny.W, tiny.H)
	}
}

func TestRectSplitH(t *testing.T) {
	r := NewRect(0, 0, 80, 24)

	top, bottom := r.SplitH(3)
	if top.H != 3 || bottom.Y != 3 || bottom.H != 21 || bottom.W != 80 {
		t.Errorf("SplitH: top=%+v bottom=%+v", top, bottom)
	}

	// Oversized split is clamped
	all, none := r.SplitH(40)
	if all.H != 24 || none.H != 0 || none.Y != 24 {
		t.Errorf("oversized SplitH: %+v %+v", all, none)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestSimStateOutcome(t *testing.T) {
	tests := []struct {
		state    SimState
		expected string
		stopped  bool
	}{
		{SimState{Halted: true}, "deadlock", true},
		{SimState{Finished: true}, "finished", true},
		{SimState{Tick: 10}, "stopped", false},
	}

	for _, tc := range tests {
		if got := tc.state.Outcome(); got != tc.expected {
			t.Errorf("Outcome() = %q, expected %q", got, tc.expected)
		}
		if got := tc.state.Stopped(); got != tc.stopped {
			t.Errorf("Stopped() = %v, expected %v", got, tc.stopped)
		}
	}
}
