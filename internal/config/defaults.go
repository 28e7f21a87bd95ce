package config

import (
	_ "embed"
)

//go:embed defaults/fruit.yaml
var defaultFruitYAML []byte

//go:embed defaults/prodcons.yaml
var defaultProdConsYAML []byte

//go:embed defaults/philosophers.yaml
var defaultPhilosophersYAML []byte

//go:embed defaults/readwriter.yaml
var defaultReadWriterYAML []byte

//go:embed defaults/counter.yaml
var defaultCounterYAML []byte

//go:embed defaults/wordcount.yaml
var defaultWordCountYAML []byte

// DefaultFruitConfig returns the default apple/orange configuration.
func DefaultFruitConfig() FruitConfig {
	return FruitConfig{
		Timing: TimingConfig{IntervalMS: 1000, LogCap: 6},
	}
}

// DefaultProdConsConfig returns the default producer/consumer configuration.
func DefaultProdConsConfig() ProdConsConfig {
	return ProdConsConfig{
		Capacity:   8,
		Producers:  3,
		Consumers:  2,
		Order:      "normal",
		HistoryLen: 20,
		Timing:     TimingConfig{IntervalMS: 1200, LogCap: 50},
	}
}

// DefaultPhilosophersConfig returns the default dining philosophers configuration.
func DefaultPhilosophersConfig() PhilosophersConfig {
	return PhilosophersConfig{
		Count:        5,
		Strategy:     "naive",
		HungerChance: 0.3,
		FinishChance: 0.4,
		Timing:       TimingConfig{IntervalMS: 800, LogCap: 6},
	}
}

// DefaultReadWriterConfig returns the default readers/writer configuration.
func DefaultReadWriterConfig() ReadWriterConfig {
	return ReadWriterConfig{
		Readers:      5,
		Policy:       "reader-priority",
		LeaveChance:  0.3,
		WriterChance: 0.3,
		Timing:       TimingConfig{IntervalMS: 800, LogCap: 8},
	}
}

// DefaultCounterConfig returns the default counter race configuration.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		Target:           10,
		Mode:             "unsafe",
		UnsafeIntervalMS: 400,
		Timing:           TimingConfig{IntervalMS: 200, LogCap: 8},
	}
}

// DefaultWordCountConfig returns the default word count configuration.
func DefaultWordCountConfig() WordCountConfig {
	return WordCountConfig{
		Texts: []string{
			"OS is fun. Threads are cool! 123 go.",
			"Race conditions? No thanks. Use Mutex.",
		},
		Mode:             "mutex",
		CollisionChance:  0.3,
		LossChance:       0.5,
		UnsafeIntervalMS: 150,
		Timing:           TimingConfig{IntervalMS: 300, LogCap: 8},
	}
}
