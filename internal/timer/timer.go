// Package timer provides the cancellable single-shot callbacks that end game
// phases, and a manual clock for driving them in tests.
package timer

import (
	"sync"
	"time"
)

// Stopper cancels a scheduled callback
type Stopper interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or was already stopped.
	Stop() bool
}

// Clock is the time source sessions are scheduled against
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Stopper
}

type realClock struct{}

// Real returns a Clock backed by the runtime timers
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Slot holds zero or one pending callback. Arming a slot cancels whatever it
// held before, and a callback that was superseded or cancelled after its
// runtime timer already expired is swallowed instead of running.
type Slot struct {
	clock   Clock
	mu      sync.Mutex
	pending Stopper
	gen     uint64
}

// NewSlot creates an empty slot scheduling on the given clock
func NewSlot(clock Clock) *Slot {
	return &Slot{clock: clock}
}

// Arm cancels any pending callback and schedules f to run once after d
func (s *Slot) Arm(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.pending = s.clock.AfterFunc(d, func() {
		if s.claim(gen) {
			f()
		}
	})
}

// Cancel drops the pending callback, if any. Safe to call on an empty slot.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	s.stopLocked()
	s.gen++
	return true
}

// Armed reports whether a callback is pending
func (s *Slot) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Slot) stopLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// claim marks the callback of generation gen as fired. Only the current
// generation may run.
func (s *Slot) claim(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.pending == nil {
		return false
	}
	s.pending = nil
	return true
}
