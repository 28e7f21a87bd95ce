// Package registry provides a global registry for scenario factories.
// Scenarios register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Scenario is the interface every simulation implements.
// Scenarios are pure tick resolvers with no external dependencies
// (especially no Bubble Tea). The platform owns timing, input and rendering.
type Scenario interface {
	// ID returns a unique identifier (e.g., "prodcons", "philosophers").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset discards all state and recreates the initial configuration.
	Reset(cfg core.RuntimeConfig)

	// Step resolves exactly one tick. Once the simulation is halted or
	// finished, Step is a no-op until Reset.
	Step() core.StepResult

	// Control applies a user intent such as switching mode or injecting a
	// deadlock. It reports whether the intent was handled.
	Control(a core.Action) bool

	// Interval returns the tick interval for the current mode.
	Interval() time.Duration

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the tick counters, halted/finished flags and mode.
	State() core.SimState

	// Journal returns the recent log, most recent first.
	Journal() []sim.Entry
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID      string
	Title   string
	Summary string
}

// Options are passed to a factory when instantiating a scenario.
type Options struct {
	ConfigPath string // Custom YAML config, empty for the search order
}

// Factory creates a new instance of a scenario.
type Factory func(opts Options) (Scenario, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Typically called from a scenario's init() function.
// Panics if a scenario with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", info.ID))
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a registered scenario.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a new scenario by its ID.
// Returns an error if the ID is not registered or the factory fails.
func Create(id string, opts Options) (Scenario, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	s, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return s, nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// maxModes bounds the mode cycle of any scenario.
const maxModes = 8

// SelectMode cycles a scenario's mode until it reports the wanted one.
// An empty mode keeps the current one. Cycling resets the scenario.
func SelectMode(s Scenario, mode string) error {
	if mode == "" {
		return nil
	}
	seen := make([]string, 0, maxModes)
	for range maxModes {
		current := s.State().Mode
		if current == mode {
			return nil
		}
		if slices.Contains(seen, current) {
			break
		}
		seen = append(seen, current)
		if !s.Control(core.ActionCycleMode) {
			break
		}
	}
	return fmt.Errorf("registry: %s has no mode %q (modes: %s)", s.ID(), mode, strings.Join(seen, ", "))
}
