package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// load resolves a scenario config.
// Search order: customPath -> ~/.synclab/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// Files are decoded over the hardcoded defaults so partial files are allowed.
func load[T validator](id, customPath string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	name := id + ".yaml"

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(name), filepath.Join("configs", name)} {
		if path == "" {
			continue
		}
		if cfg, ok := tryFile(path, fallback); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil || cfg.Validate() != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile decodes an optional config file; unreadable or invalid files are skipped.
func tryFile[T validator](path string, fallback func() T) (T, bool) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".synclab", "configs", filename)
}

// LoadFruit loads the apple/orange configuration.
func LoadFruit(customPath string) (FruitConfig, error) {
	return load("fruit", customPath, defaultFruitYAML, DefaultFruitConfig)
}

// LoadProdCons loads the producer/consumer configuration.
func LoadProdCons(customPath string) (ProdConsConfig, error) {
	return load("prodcons", customPath, defaultProdConsYAML, DefaultProdConsConfig)
}

// LoadPhilosophers loads the dining philosophers configuration.
func LoadPhilosophers(customPath string) (PhilosophersConfig, error) {
	return load("philosophers", customPath, defaultPhilosophersYAML, DefaultPhilosophersConfig)
}

// LoadReadWriter loads the readers/writer configuration.
func LoadReadWriter(customPath string) (ReadWriterConfig, error) {
	return load("readwriter", customPath, defaultReadWriterYAML, DefaultReadWriterConfig)
}

// LoadCounter loads the counter race configuration.
func LoadCounter(customPath string) (CounterConfig, error) {
	return load("counter", customPath, defaultCounterYAML, DefaultCounterConfig)
}

// LoadWordCount loads the word count configuration.
func LoadWordCount(customPath string) (WordCountConfig, error) {
	return load("wordcount", customPath, defaultWordCountYAML, DefaultWordCountConfig)
}

// Embedded returns the embedded default YAML for a scenario, or nil.
func Embedded(id string) []byte {
	switch id {
	case "fruit":
		return defaultFruitYAML
	case "prodcons":
		return defaultProdConsYAML
	case "philosophers":
		return defaultPhilosophersYAML
	case "readwriter":
		return defaultReadWriterYAML
	case "counter":
		return defaultCounterYAML
	case "wordcount":
		return defaultWordCountYAML
	default:
		return nil
	}
}
