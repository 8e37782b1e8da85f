package schedule

import (
	"sync"
	"time"
)

// Slot holds at most one pending callback. Scheduling replaces whatever was
// pending, and a replaced callback never runs even if its timer already fired.
type Slot struct {
	mu    sync.Mutex
	sched Scheduler
	timer Timer
	gen   uint64
}

// NewSlot returns a slot using sched, or the wall clock when nil.
func NewSlot(sched Scheduler) *Slot {
	if sched == nil {
		sched = Real()
	}
	return &Slot{sched: sched}
}

// Schedule cancels any pending callback and arranges fn to run after d.
func (s *Slot) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		if s.gen != gen || s.timer == nil {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending callback and reports whether one existed.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	return true
}

// Pending reports whether a callback is waiting to run.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Debouncer runs only the last of a burst of triggers, delay after it.
type Debouncer struct {
	slot  *Slot
	delay time.Duration
}

// NewDebouncer returns a debouncer on sched.
func NewDebouncer(sched Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{slot: NewSlot(sched), delay: delay}
}

// Trigger restarts the quiet period with fn as the pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.slot.Schedule(d.delay, fn)
}

// Stop drops any pending callback.
func (d *Debouncer) Stop() {
	d.slot.Cancel()
}
