package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDispatchesByType(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var clicks, keys int
	cancelClick := bus.Subscribe(EventClick, func(Event) { clicks++ })
	bus.Subscribe(EventKeyDown, func(ev Event) {
		if ev.Key == KeyEscape {
			keys++
		}
	})

	assert.Equal(t, 1, bus.Click(TargetPage))
	assert.Equal(t, 1, bus.KeyDown(KeyEscape))
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 1, keys)

	cancelClick()
	cancelClick()
	assert.Zero(t, bus.Click(TargetOverlay))
	assert.Zero(t, bus.Listeners(EventClick))
}

func TestBusHandlerMayCancelItself(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var cancel func()
	calls := 0
	cancel = bus.Subscribe(EventClick, func(Event) {
		calls++
		cancel()
	})
	bus.Click(TargetOverlay)
	bus.Click(TargetOverlay)
	assert.Equal(t, 1, calls)
}
