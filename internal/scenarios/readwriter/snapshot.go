package readwriter

// Snapshot contains the complete scenario state for comparison and tracing.
type Snapshot struct {
	Tick     int             `yaml:"tick"`
	Actions  int             `yaml:"actions"`
	Policy   string          `yaml:"policy"`
	Resource string          `yaml:"resource"`
	Active   int             `yaml:"active_readers"`
	Readers  []ActorSnapshot `yaml:"readers"`
	Writer   ActorSnapshot   `yaml:"writer"`
	LogSize  int             `yaml:"log_size"`
}

// ActorSnapshot is the serializable view of a reader or the writer.
type ActorSnapshot struct {
	Name    string `yaml:"name"`
	Status  string `yaml:"status"`
	Actions int    `yaml:"actions"`
}

// Snapshot returns the current state.
func (s *Scenario) Snapshot() Snapshot {
	readers := make([]ActorSnapshot, len(s.readers))
	for i, r := range s.readers {
		readers[i] = ActorSnapshot{Name: r.Name, Status: r.Status.String(), Actions: r.Actions}
	}
	return Snapshot{
		Tick:     s.state.Tick,
		Actions:  s.state.Actions,
		Policy:   s.policy.String(),
		Resource: s.resource.String(),
		Active:   s.ActiveReaders(),
		Readers:  readers,
		Writer:   ActorSnapshot{Name: s.writer.Name, Status: s.writer.Status.String(), Actions: s.writer.Actions},
		LogSize:  s.journal.Len(),
	}
}

// Trace returns the snapshot as an opaque value for the trace command.
func (s *Scenario) Trace() any { return s.Snapshot() }
