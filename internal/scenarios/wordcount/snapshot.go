package wordcount

// Snapshot contains the complete scenario state for comparison and tracing.
type Snapshot struct {
	Tick       int              `yaml:"tick"`
	Actions    int              `yaml:"actions"`
	Finished   bool             `yaml:"finished"`
	Mode       string           `yaml:"mode"`
	Total      int              `yaml:"total"`
	Expected   int              `yaml:"expected"`
	Collisions int              `yaml:"collisions"`
	Lost       int              `yaml:"lost"`
	Threads    []ThreadSnapshot `yaml:"threads"`
	LogSize    int              `yaml:"log_size"`
}

// ThreadSnapshot is the serializable view of one thread.
type ThreadSnapshot struct {
	Name   string `yaml:"name"`
	Cursor int    `yaml:"cursor"`
	Length int    `yaml:"length"`
	Local  int    `yaml:"local"`
	Status string `yaml:"status"`
}

// Snapshot returns the current state.
func (s *Scenario) Snapshot() Snapshot {
	threads := make([]ThreadSnapshot, len(s.threads))
	for i, t := range s.threads {
		threads[i] = ThreadSnapshot{Name: t.Name, Cursor: t.Cursor, Length: len(t.Text), Local: t.Local, Status: t.Status.String()}
	}
	return Snapshot{
		Tick:       s.state.Tick,
		Actions:    s.state.Actions,
		Finished:   s.state.Finished,
		Mode:       s.mode.String(),
		Total:      s.global,
		Expected:   s.Expected(),
		Collisions: s.collisions,
		Lost:       s.lost,
		Threads:    threads,
		LogSize:    s.journal.Len(),
	}
}

// Trace returns the snapshot as an opaque value for the trace command.
func (s *Scenario) Trace() any { return s.Snapshot() }
