// Package schedule runs delayed callbacks that are cancelled and replaced,
// never stacked, on each new trigger.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from firing and reports whether it was pending.
	Stop() bool
}

// Scheduler creates timers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type wallClock struct{}

// Real returns a Scheduler backed by the runtime timer.
func Real() Scheduler { return wallClock{} }

func (wallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Manual is a Scheduler driven by Advance. Callbacks run synchronously on the
// goroutine calling Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

// NewManual returns a manual clock at model time zero.
func NewManual() *Manual { return &Manual{} }

type manualTimer struct {
	owner *Manual
	at    time.Duration
	seq   uint64
	fn    func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.owner.remove(t)
	return true
}

// AfterFunc schedules fn at now+d in model time.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	timer := &manualTimer{owner: m, at: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, timer)
	return timer
}

// Advance moves model time forward by d, firing due callbacks in deadline
// order. Callbacks scheduled while advancing fire if they fall due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		next.done = true
		m.remove(next)
		m.mu.Unlock()

		next.fn()
	}
}

// Now returns the elapsed model time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of timers that have not fired or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at == m.timers[j].at {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at < m.timers[j].at
	})
	if m.timers[0].at > target {
		return nil
	}
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) {
	for i, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
