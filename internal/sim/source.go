// Package sim holds the pieces every tick resolver shares: the pluggable
// source of random decisions, the capped journal, semaphore and mutex gates,
// and the drawing helpers used to render them.
package sim

import "math/rand"

// Source supplies every random decision a resolver makes.
// Swapping it for a Script makes a simulation fully reproducible in tests.
type Source interface {
	// Pick returns the index of the chosen candidate, in [0, n).
	Pick(n int) int
	// Chance reports whether an event with probability p happens.
	Chance(p float64) bool
}

// Seeded is a Source backed by math/rand.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a Source that replays identically for the same seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly distributed index in [0, n).
func (s *Seeded) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return s.rng.Intn(n)
}

// Chance reports true with probability p.
func (s *Seeded) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// First always picks the first candidate and every chance succeeds.
type First struct{}

// Pick always returns 0.
func (First) Pick(int) int { return 0 }

// Chance always returns true.
func (First) Chance(float64) bool { return true }

// Script replays queued decisions in order. Picks are clamped into range;
// once a queue is exhausted Pick returns 0 and Chance returns Default.
type Script struct {
	Picks   []int
	Chances []bool
	Default bool
}

// Pick pops the next scripted index.
func (s *Script) Pick(n int) int {
	if len(s.Picks) == 0 || n <= 0 {
		return 0
	}
	i := s.Picks[0]
	s.Picks = s.Picks[1:]
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Chance pops the next scripted outcome.
func (s *Script) Chance(float64) bool {
	if len(s.Chances) == 0 {
		return s.Default
	}
	c := s.Chances[0]
	s.Chances = s.Chances[1:]
	return c
}

// Choose picks one candidate uniformly through src.
// It returns false when there is nothing to choose from.
func Choose[T any](src Source, candidates []T) (T, bool) {
	var zero T
	if len(candidates) == 0 {
		return zero, false
	}
	return candidates[src.Pick(len(candidates))], true
}

// Shuffle returns 0..n-1 in an order drawn from src (Fisher-Yates).
func Shuffle(src Source, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.Pick(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
