package fruit

// Snapshot contains the complete scenario state for comparison and tracing.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       int             `yaml:"tick"`
	Actions    int             `yaml:"actions"`
	Plate      string          `yaml:"plate"`
	PlateGate  int             `yaml:"plate_gate"`
	AppleGate  int             `yaml:"apple_gate"`
	OrangeGate int             `yaml:"orange_gate"`
	Actors     []ActorSnapshot `yaml:"actors"`
	LogSize    int             `yaml:"log_size"`
}

// ActorSnapshot is the serializable view of one family member.
type ActorSnapshot struct {
	Name    string `yaml:"name"`
	Status  string `yaml:"status"`
	Actions int    `yaml:"actions"`
}

// Snapshot returns the current state.
func (s *Scenario) Snapshot() Snapshot {
	actors := make([]ActorSnapshot, len(s.actors))
	for i, a := range s.actors {
		actors[i] = ActorSnapshot{Name: a.Name, Status: a.Status.String(), Actions: a.Actions}
	}
	return Snapshot{
		Tick:       s.state.Tick,
		Actions:    s.state.Actions,
		Plate:      s.plate.String(),
		PlateGate:  s.plateGate.Value,
		AppleGate:  s.appleGate.Value,
		OrangeGate: s.orangeGate.Value,
		Actors:     actors,
		LogSize:    s.journal.Len(),
	}
}

// Trace returns the snapshot as an opaque value for the trace command.
func (s *Scenario) Trace() any { return s.Snapshot() }
