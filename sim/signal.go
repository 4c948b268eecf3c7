package sim

// A Signal is a named cell holding a committed current value and a pending
// next value. Writing through SetNext never changes what readers observe
// within the same delta cycle; the engine commits pending values at the
// delta-cycle boundary and wakes the waiters of every signal whose committed
// value changed.
//
// Signal values must be comparable (booleans, numbers, strings, pointers).
// The single-writer discipline of the simulation makes locking unnecessary:
// only the process that owns a signal writes it, and only while it holds
// control.
type Signal struct {
	name   string
	engine *SerialEngine

	current any
	next    any
	pending bool

	waiters []*Process
}

// Name returns the name of the signal.
func (s *Signal) Name() string {
	return s.name
}

// Value returns the committed value of the signal. A process never observes
// its own same-cycle write here.
func (s *Signal) Value() any {
	return s.current
}

// Bool returns the committed value as a boolean. It returns false if the
// signal carries anything other than true.
func (s *Signal) Bool() bool {
	b, ok := s.current.(bool)
	return ok && b
}

// SetNext stages v as the signal's value for the next delta cycle. If v
// equals the committed value at commit time, no change is recorded and
// waiters are not woken.
func (s *Signal) SetNext(v any) {
	s.next = v

	if !s.pending {
		s.pending = true
		s.engine.pendingSignals = append(s.engine.pendingSignals, s)
	}
}

// removeWaiter detaches a process from the signal's waiter list. The engine
// calls it when a process woken by one signal stops waiting on the others.
func (s *Signal) removeWaiter(p *Process) {
	for i, w := range s.waiters {
		if w == p {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}

// commit publishes the pending value. It reports whether the committed value
// differs from the previous one.
func (s *Signal) commit() bool {
	s.pending = false

	if s.next == s.current {
		return false
	}

	s.current = s.next

	return true
}
