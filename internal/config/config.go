// Package config provides YAML-based scenario configuration loading and
// speed presets for the simulations.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TimingConfig controls pacing and journal size shared by all scenarios.
type TimingConfig struct {
	IntervalMS int `yaml:"interval_ms"` // Tick interval in milliseconds
	LogCap     int `yaml:"log_cap"`     // Journal entries retained
}

// Interval returns the configured tick interval.
func (t TimingConfig) Interval() time.Duration {
	return time.Duration(t.IntervalMS) * time.Millisecond
}

func (t TimingConfig) validate() error {
	if t.IntervalMS <= 0 {
		return errors.New("interval_ms must be positive")
	}
	if t.LogCap <= 0 {
		return errors.New("log_cap must be positive")
	}
	return nil
}

// FruitConfig contains the configuration for the apple/orange scenario.
type FruitConfig struct {
	Timing TimingConfig `yaml:"timing"`
}

// ProdConsConfig contains the configuration for the producer/consumer scenario.
type ProdConsConfig struct {
	Capacity   int          `yaml:"capacity"`    // Buffer slots
	Producers  int          `yaml:"producers"`   // Producer actors
	Consumers  int          `yaml:"consumers"`   // Consumer actors
	Order      string       `yaml:"order"`       // "normal" or "inverted"
	HistoryLen int          `yaml:"history_len"` // Occupancy samples kept for the chart
	Timing     TimingConfig `yaml:"timing"`
}

// PhilosophersConfig contains the configuration for the dining philosophers.
type PhilosophersConfig struct {
	Count        int          `yaml:"count"`         // Philosophers (and forks)
	Strategy     string       `yaml:"strategy"`      // "naive" or "ordered"
	HungerChance float64      `yaml:"hunger_chance"` // Thinking -> Hungry
	FinishChance float64      `yaml:"finish_chance"` // Eating -> Thinking
	Timing       TimingConfig `yaml:"timing"`
}

// ReadWriterConfig contains the configuration for the readers/writer scenario.
type ReadWriterConfig struct {
	Readers      int          `yaml:"readers"`
	Policy       string       `yaml:"policy"`        // "reader-priority" or "writer-priority"
	LeaveChance  float64      `yaml:"leave_chance"`  // Active reader or writer leaves
	WriterChance float64      `yaml:"writer_chance"` // Arrival picks the writer
	Timing       TimingConfig `yaml:"timing"`
}

// CounterConfig contains the configuration for the counter race.
type CounterConfig struct {
	Target           int          `yaml:"target"` // Increments per thread
	Mode             string       `yaml:"mode"`   // "unsafe" or "safe"
	UnsafeIntervalMS int          `yaml:"unsafe_interval_ms"`
	Timing           TimingConfig `yaml:"timing"`
}

// WordCountConfig contains the configuration for the word count scenario.
type WordCountConfig struct {
	Texts            []string     `yaml:"texts"`            // One input per thread
	Mode             string       `yaml:"mode"`             // "unsafe", "mutex" or "local"
	CollisionChance  float64      `yaml:"collision_chance"` // Unsafe update collides
	LossChance       float64      `yaml:"loss_chance"`      // Collision loses the update
	UnsafeIntervalMS int          `yaml:"unsafe_interval_ms"`
	Timing           TimingConfig `yaml:"timing"`
}

// Validate checks the apple/orange configuration.
func (c FruitConfig) Validate() error {
	return wrap("fruit", c.Timing.validate())
}

// Validate checks the producer/consumer configuration.
func (c ProdConsConfig) Validate() error {
	var err error
	switch {
	case c.Capacity <= 0:
		err = errors.New("capacity must be positive")
	case c.Producers <= 0 || c.Consumers <= 0:
		err = errors.New("producers and consumers must be positive")
	case c.HistoryLen < 0:
		err = errors.New("history_len must not be negative")
	case c.Order != "normal" && c.Order != "inverted":
		err = fmt.Errorf("unknown order %q", c.Order)
	default:
		err = c.Timing.validate()
	}
	return wrap("prodcons", err)
}

// Validate checks the dining philosophers configuration.
func (c PhilosophersConfig) Validate() error {
	var err error
	switch {
	case c.Count < 2:
		err = errors.New("count must be at least 2")
	case !isChance(c.HungerChance) || !isChance(c.FinishChance):
		err = errors.New("chances must be within [0, 1]")
	case c.Strategy != "naive" && c.Strategy != "ordered":
		err = fmt.Errorf("unknown strategy %q", c.Strategy)
	default:
		err = c.Timing.validate()
	}
	return wrap("philosophers", err)
}

// Validate checks the readers/writer configuration.
func (c ReadWriterConfig) Validate() error {
	var err error
	switch {
	case c.Readers <= 0:
		err = errors.New("readers must be positive")
	case !isChance(c.LeaveChance) || !isChance(c.WriterChance):
		err = errors.New("chances must be within [0, 1]")
	case c.Policy != "reader-priority" && c.Policy != "writer-priority":
		err = fmt.Errorf("unknown policy %q", c.Policy)
	default:
		err = c.Timing.validate()
	}
	return wrap("readwriter", err)
}

// Validate checks the counter race configuration.
func (c CounterConfig) Validate() error {
	var err error
	switch {
	case c.Target <= 0:
		err = errors.New("target must be positive")
	case c.UnsafeIntervalMS <= 0:
		err = errors.New("unsafe_interval_ms must be positive")
	case c.Mode != "unsafe" && c.Mode != "safe":
		err = fmt.Errorf("unknown mode %q", c.Mode)
	default:
		err = c.Timing.validate()
	}
	return wrap("counter", err)
}

// Validate checks the word count configuration.
func (c WordCountConfig) Validate() error {
	var err error
	switch {
	case len(c.Texts) != 2:
		err = fmt.Errorf("texts must hold exactly 2 inputs, got %d", len(c.Texts))
	case !isChance(c.CollisionChance) || !isChance(c.LossChance):
		err = errors.New("chances must be within [0, 1]")
	case c.UnsafeIntervalMS <= 0:
		err = errors.New("unsafe_interval_ms must be positive")
	case c.Mode != "unsafe" && c.Mode != "mutex" && c.Mode != "local":
		err = fmt.Errorf("unknown mode %q", c.Mode)
	default:
		err = c.Timing.validate()
	}
	return wrap("wordcount", err)
}

func isChance(p float64) bool {
	return p >= 0 && p <= 1
}

func wrap(id string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("config %s: %w", id, err)
}
