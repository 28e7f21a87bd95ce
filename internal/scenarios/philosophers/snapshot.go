package philosophers

// Snapshot contains the complete scenario state for comparison and tracing.
type Snapshot struct {
	Tick     int                   `yaml:"tick"`
	Actions  int                   `yaml:"actions"`
	Halted   bool                  `yaml:"halted"`
	Strategy string                `yaml:"strategy"`
	Phils    []PhilosopherSnapshot `yaml:"philosophers"`
	Forks    []int                 `yaml:"forks"` // Owner per fork, -1 when free
	LogSize  int                   `yaml:"log_size"`
}

// PhilosopherSnapshot is the serializable view of one diner.
type PhilosopherSnapshot struct {
	Name   string `yaml:"name"`
	Status string `yaml:"status"`
	Meals  int    `yaml:"meals"`
}

// Snapshot returns the current state.
func (s *Scenario) Snapshot() Snapshot {
	phils := make([]PhilosopherSnapshot, len(s.phils))
	for i, p := range s.phils {
		phils[i] = PhilosopherSnapshot{Name: p.Name, Status: p.Status.String(), Meals: p.Actions}
	}
	forks := make([]int, len(s.forks))
	copy(forks, s.forks)

	return Snapshot{
		Tick:     s.state.Tick,
		Actions:  s.state.Actions,
		Halted:   s.state.Halted,
		Strategy: s.strategy.String(),
		Phils:    phils,
		Forks:    forks,
		LogSize:  s.journal.Len(),
	}
}

// Trace returns the snapshot as an opaque value for the trace command.
func (s *Scenario) Trace() any { return s.Snapshot() }
