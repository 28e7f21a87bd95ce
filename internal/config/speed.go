package config

import (
	"fmt"
	"slices"
)

// SpeedPreset represents a named simulation pace.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedTurbo  SpeedPreset = "turbo"
)

// speedLadder lists presets from slowest to fastest.
var speedLadder = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedTurbo}

// ParseSpeed validates a preset name. An empty name means normal.
func ParseSpeed(name string) (SpeedPreset, error) {
	if name == "" {
		return SpeedNormal, nil
	}
	p := SpeedPreset(name)
	if !slices.Contains(speedLadder, p) {
		return SpeedNormal, fmt.Errorf("config: unknown speed %q (want slow, normal, fast or turbo)", name)
	}
	return p, nil
}

// Multiplier returns the tick interval multiplier for the preset.
// Values above 1 slow the simulation down.
func (p SpeedPreset) Multiplier() float64 {
	switch p {
	case SpeedSlow:
		return 2.0
	case SpeedFast:
		return 0.5
	case SpeedTurbo:
		return 0.2
	default:
		return 1.0
	}
}

// Faster returns the next quicker preset, saturating at turbo.
func (p SpeedPreset) Faster() SpeedPreset {
	i := slices.Index(speedLadder, p)
	if i < 0 {
		return SpeedNormal
	}
	return speedLadder[min(i+1, len(speedLadder)-1)]
}

// Slower returns the next slower preset, saturating at slow.
func (p SpeedPreset) Slower() SpeedPreset {
	i := slices.Index(speedLadder, p)
	if i < 0 {
		return SpeedNormal
	}
	return speedLadder[max(i-1, 0)]
}
