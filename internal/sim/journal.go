package sim

import "time"

// Severity tags a journal entry for coloring.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Entry is one human-readable transition description.
type Entry struct {
	Seq      int       `yaml:"seq"`
	Time     time.Time `yaml:"time"`
	Actor    string    `yaml:"actor"`
	Action   string    `yaml:"action"`
	Detail   string    `yaml:"detail,omitempty"`
	Severity Severity  `yaml:"severity"`
}

// Journal is an append-only log bounded to a fixed recent window.
// Newest entries come first; adding past the cap drops the oldest.
type Journal struct {
	capacity int
	entries  []Entry
	seq      int
	clock    func() time.Time
}

// NewJournal creates a journal holding at most capacity entries.
func NewJournal(capacity int) *Journal {
	return &Journal{
		capacity: max(capacity, 1),
		clock:    time.Now,
	}
}

// SetClock replaces the timestamp source.
func (j *Journal) SetClock(clock func() time.Time) {
	j.clock = clock
}

// Add records an entry at the front of the journal.
func (j *Journal) Add(actor, action, detail string, sev Severity) {
	j.seq++
	e := Entry{
		Seq:      j.seq,
		Time:     j.clock(),
		Actor:    actor,
		Action:   action,
		Detail:   detail,
		Severity: sev,
	}

	j.entries = append(j.entries, Entry{})
	copy(j.entries[1:], j.entries)
	j.entries[0] = e

	if len(j.entries) > j.capacity {
		j.entries = j.entries[:j.capacity]
	}
}

// Entries returns a copy of the journal, most recent first.
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Cap returns the retention window.
func (j *Journal) Cap() int {
	return j.capacity
}

// Reset empties the journal and restarts numbering.
func (j *Journal) Reset() {
	j.entries = nil
	j.seq = 0
}
