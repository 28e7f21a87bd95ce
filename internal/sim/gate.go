package sim

// Semaphore is a counting gate whose value stays within [0, Max].
type Semaphore struct {
	Value int
	Max   int
}

// NewSemaphore creates a semaphore with the given initial value and bound.
func NewSemaphore(value, maxValue int) Semaphore {
	return Semaphore{Value: value, Max: maxValue}
}

// Open reports whether a P operation would succeed.
func (s Semaphore) Open() bool {
	return s.Value > 0
}

// TryAcquire performs P without blocking. It returns false when the
// semaphore is at zero and leaves it unchanged.
func (s *Semaphore) TryAcquire() bool {
	if s.Value <= 0 {
		return false
	}
	s.Value--
	return true
}

// Release performs V. It returns false when the value is already at Max.
func (s *Semaphore) Release() bool {
	if s.Value >= s.Max {
		return false
	}
	s.Value++
	return true
}

// Mutex is a binary lock flag with an owner label.
type Mutex struct {
	Locked bool
	Owner  string
}

// TryLock acquires the lock for owner if it is free.
func (m *Mutex) TryLock(owner string) bool {
	if m.Locked {
		return false
	}
	m.Locked = true
	m.Owner = owner
	return true
}

// Unlock releases the lock. Only the current owner may release it.
func (m *Mutex) Unlock(owner string) bool {
	if !m.Locked || m.Owner != owner {
		return false
	}
	m.Locked = false
	m.Owner = ""
	return true
}

// Value presents the lock the way a binary semaphore reads: 1 when free.
func (m Mutex) Value() int {
	if m.Locked {
		return 0
	}
	return 1
}
