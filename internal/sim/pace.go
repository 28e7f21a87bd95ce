package sim

import "time"

// Scale applies a speed multiplier to a base tick interval.
// Non-positive multipliers leave the interval unchanged; the result is
// never shorter than a millisecond.
func Scale(base time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		return base
	}
	return max(time.Duration(float64(base)*speed), time.Millisecond)
}
