package prodcons

// Snapshot contains the complete scenario state for comparison and tracing.
type Snapshot struct {
	Tick       int             `yaml:"tick"`
	Actions    int             `yaml:"actions"`
	Halted     bool            `yaml:"halted"`
	Order      string          `yaml:"order"`
	Slots      []int           `yaml:"slots"` // Item ID per slot, 0 when free
	Empty      int             `yaml:"empty"`
	Full       int             `yaml:"full"`
	MutexOwner string          `yaml:"mutex_owner,omitempty"`
	EmptyQueue []string        `yaml:"empty_queue"`
	FullQueue  []string        `yaml:"full_queue"`
	MutexQueue []string        `yaml:"mutex_queue"`
	Actors     []ActorSnapshot `yaml:"actors"`
	History    []int           `yaml:"history"`
	NextID     int             `yaml:"next_id"`
	LogSize    int             `yaml:"log_size"`
}

// ActorSnapshot is the serializable view of one actor.
type ActorSnapshot struct {
	Name    string `yaml:"name"`
	Status  string `yaml:"status"`
	On      string `yaml:"on,omitempty"`
	Actions int    `yaml:"actions"`
}

// Snapshot returns the current state.
func (s *Scenario) Snapshot() Snapshot {
	slots := make([]int, len(s.buffer))
	for i, it := range s.buffer {
		if it != nil {
			slots[i] = it.ID
		}
	}

	actors := make([]ActorSnapshot, len(s.actors))
	for i, a := range s.actors {
		as := ActorSnapshot{Name: a.Name, Status: a.Status.String(), Actions: a.Actions}
		if a.Status == StatusBlocked {
			as.On = a.On.String()
		}
		actors[i] = as
	}

	history := make([]int, len(s.history))
	copy(history, s.history)

	return Snapshot{
		Tick:       s.state.Tick,
		Actions:    s.state.Actions,
		Halted:     s.state.Halted,
		Order:      s.order.String(),
		Slots:      slots,
		Empty:      s.empty.Value,
		Full:       s.full.Value,
		MutexOwner: s.mutex.Owner,
		EmptyQueue: s.Queue(GateEmpty),
		FullQueue:  s.Queue(GateFull),
		MutexQueue: s.Queue(GateMutex),
		Actors:     actors,
		History:    history,
		NextID:     s.nextID,
		LogSize:    s.journal.Len(),
	}
}

// Trace returns the snapshot as an opaque value for the trace command.
func (s *Scenario) Trace() any { return s.Snapshot() }
