package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/storage"
)

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() (core.RuntimeConfig, config.SpeedPreset, error) {
	speed, err := config.ParseSpeed(flagSpeed)
	if err != nil {
		return core.RuntimeConfig{}, speed, err
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.Speed = speed.Multiplier()
	return cfg, speed, nil
}

// createScenario instantiates a registered scenario and switches it to
// the requested mode.
func createScenario(id, mode string) (registry.Scenario, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown scenario %q (run 'synclab list' to see available scenarios)", id)
	}
	scn, err := registry.Create(id, registry.Options{ConfigPath: flagConfig})
	if err != nil {
		return nil, err
	}
	if err := registry.SelectMode(scn, mode); err != nil {
		return nil, err
	}
	return scn, nil
}

// openStore opens the run history. The history is optional: on failure a
// warning is logged and nil is returned.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
