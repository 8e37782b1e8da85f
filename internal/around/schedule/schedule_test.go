package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()

	clock := NewManual()
	var order []string
	clock.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	clock.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(time.Second, func() { order = append(order, "c") })

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 500*time.Millisecond, clock.Now())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, clock.Pending())
}

func TestManualStop(t *testing.T) {
	t.Parallel()

	clock := NewManual()
	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	clock.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestManualRunsTimersScheduledDuringAdvance(t *testing.T) {
	t.Parallel()

	clock := NewManual()
	var fired []time.Duration
	clock.AfterFunc(time.Second, func() {
		fired = append(fired, clock.Now())
		clock.AfterFunc(time.Second, func() { fired = append(fired, clock.Now()) })
	})
	clock.Advance(3 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, fired)
}

func TestSlotReplacesPendingCallback(t *testing.T) {
	t.Parallel()

	clock := NewManual()
	slot := NewSlot(clock)
	var calls []string

	slot.Schedule(2*time.Second, func() { calls = append(calls, "first") })
	clock.Advance(1500 * time.Millisecond)
	slot.Schedule(2*time.Second, func() { calls = append(calls, "second") })
	assert.True(t, slot.Pending())

	clock.Advance(1 * time.Second)
	assert.Empty(t, calls, "replaced callback must not fire")

	clock.Advance(1 * time.Second)
	assert.Equal(t, []string{"second"}, calls)
	assert.False(t, slot.Pending())
	assert.Zero(t, clock.Pending())
}

func TestSlotCancel(t *testing.T) {
	t.Parallel()

	clock := NewManual()
	slot := NewSlot(clock)
	assert.False(t, slot.Cancel())

	fired := false
	slot.Schedule(time.Second, func() { fired = true })
	assert.True(t, slot.Cancel())
	clock.Advance(time.Minute)
	assert.False(t, fired)
}

func TestSlotWithWallClock(t *testing.T) {
	t.Parallel()

	slot := NewSlot(nil)
	done := make(chan struct{})
	slot.Schedule(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not run")
	}
}

func TestDebouncerKeepsLastTrigger(t *testing.T) {
	t.Parallel()

	clock := NewManual()
	debounce := NewDebouncer(clock, 150*time.Millisecond)
	var width atomic.Int64

	for _, w := range []int64{400, 500, 600} {
		w := w
		debounce.Trigger(func() { width.Store(w) })
		clock.Advance(100 * time.Millisecond)
	}
	require.Zero(t, width.Load())

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, int64(600), width.Load())

	debounce.Trigger(func() { width.Store(1) })
	debounce.Stop()
	clock.Advance(time.Second)
	assert.Equal(t, int64(600), width.Load())
}
