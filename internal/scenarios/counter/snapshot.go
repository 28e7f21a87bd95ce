package counter

// Snapshot contains the complete scenario state for comparison and tracing.
type Snapshot struct {
	Tick     int              `yaml:"tick"`
	Actions  int              `yaml:"actions"`
	Finished bool             `yaml:"finished"`
	Mode     string           `yaml:"mode"`
	RAM      int              `yaml:"ram"`
	Lost     int              `yaml:"lost"`
	Threads  []ThreadSnapshot `yaml:"threads"`
	LogSize  int              `yaml:"log_size"`
}

// ThreadSnapshot is the serializable view of one thread.
type ThreadSnapshot struct {
	Name    string `yaml:"name"`
	PC      string `yaml:"pc"`
	Reg     int    `yaml:"reg"`
	Loaded  bool   `yaml:"loaded"`
	Counted int    `yaml:"counted"`
}

// Snapshot returns the current state.
func (s *Scenario) Snapshot() Snapshot {
	threads := make([]ThreadSnapshot, len(s.threads))
	for i, t := range s.threads {
		threads[i] = ThreadSnapshot{Name: t.Name, PC: t.PC.String(), Reg: t.Reg, Loaded: t.Loaded, Counted: t.Counted}
	}
	return Snapshot{
		Tick:     s.state.Tick,
		Actions:  s.state.Actions,
		Finished: s.state.Finished,
		Mode:     s.mode.String(),
		RAM:      s.ram,
		Lost:     s.Lost(),
		Threads:  threads,
		LogSize:  s.journal.Len(),
	}
}

// Trace returns the snapshot as an opaque value for the trace command.
func (s *Scenario) Trace() any { return s.Snapshot() }
