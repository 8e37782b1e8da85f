package popup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5hraddha/around/internal/around/entity"
	"github.com/5hraddha/around/internal/around/schedule"
	"github.com/5hraddha/around/internal/platform/logging"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *schedule.Manual) {
	t.Helper()
	clock := schedule.NewManual()
	return New(NewBus(), clock, logging.Discard()), clock
}

func primaryFlags(s State) int {
	open := 0
	for _, k := range []Kind{KindProfile, KindAvatar, KindAddPlace, KindPreview, KindDeleteConfirm} {
		if s.IsOpen(k) {
			open++
		}
	}
	return open
}

func TestPrimaryModalsAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	card := &entity.Card{ID: "c1"}

	steps := []func(){
		o.OpenProfile,
		o.OpenAvatar,
		func() { require.NoError(t, o.OpenPreview(card)) },
		o.OpenAddPlace,
		func() { require.NoError(t, o.OpenDeleteConfirm(card)) },
		o.OpenProfile,
	}
	for _, step := range steps {
		step()
		assert.Equal(t, 1, primaryFlags(o.State()))
	}
	assert.Nil(t, o.State().Card, "non-card modal must drop the bound card")
}

func TestOpenCardModalsRequireCard(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	assert.Error(t, o.OpenPreview(nil))
	assert.Error(t, o.OpenDeleteConfirm(nil))
	assert.Error(t, o.Open(KindNone, nil))
	assert.False(t, o.State().AnyOpen())
}

func TestOpenBindsCard(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	card := &entity.Card{ID: "c1"}
	require.NoError(t, o.OpenDeleteConfirm(card))

	state := o.State()
	assert.True(t, state.IsOpen(KindDeleteConfirm))
	assert.Same(t, card, state.Card)
}

func TestCloseAllClearsEverything(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	require.NoError(t, o.OpenPreview(&entity.Card{ID: "c1"}))
	o.OpenTooltip(true)

	o.CloseAll()
	state := o.State()
	assert.Equal(t, KindNone, state.Primary)
	assert.Nil(t, state.Card)
	assert.False(t, state.Tooltip.Open)
	assert.False(t, state.AnyOpen())
}

func TestCloseAllClearsTooltipOnly(t *testing.T) {
	t.Parallel()

	o, clock := newTestOrchestrator(t)
	o.OpenTooltip(false)
	o.CloseAll()
	assert.False(t, o.State().Tooltip.Open)
	assert.Zero(t, clock.Pending(), "auto-close timer must be cancelled")
}

func TestDismissalListenersFollowOpenState(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	bus := o.Bus()
	assert.Zero(t, bus.Listeners(EventClick))
	assert.Zero(t, bus.Listeners(EventKeyDown))

	o.OpenAvatar()
	o.OpenProfile()
	assert.Equal(t, 1, bus.Listeners(EventClick), "switching modals must not stack handlers")
	assert.Equal(t, 1, bus.Listeners(EventKeyDown))
	assert.True(t, o.State().Listening)

	o.CloseAll()
	assert.Zero(t, bus.Listeners(EventClick))
	assert.Zero(t, bus.Listeners(EventKeyDown))
	assert.False(t, o.State().Listening)
}

func TestOverlayClickDismisses(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	o.OpenAddPlace()

	o.Bus().Click(TargetSurface)
	assert.True(t, o.State().IsOpen(KindAddPlace), "clicks on the modal surface keep it open")

	o.Bus().Click(TargetOverlay)
	assert.False(t, o.State().AnyOpen())
	assert.Zero(t, o.Bus().Click(TargetOverlay), "no handlers once closed")
}

func TestEscapeDismisses(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	o.OpenProfile()

	o.Bus().KeyDown("Enter")
	assert.True(t, o.State().IsOpen(KindProfile))

	o.Bus().KeyDown(KeyEscape)
	assert.False(t, o.State().AnyOpen())
}

func TestTooltipOverlaysPrimaryModal(t *testing.T) {
	t.Parallel()

	o, clock := newTestOrchestrator(t)
	o.OpenProfile()
	o.OpenTooltip(true)

	state := o.State()
	assert.True(t, state.IsOpen(KindProfile))
	assert.True(t, state.Tooltip.Open)
	assert.True(t, state.Tooltip.Success)

	clock.Advance(2 * time.Second)
	state = o.State()
	assert.False(t, state.Tooltip.Open)
	assert.True(t, state.IsOpen(KindProfile), "auto-close touches only the tooltip")
	assert.True(t, state.Listening)
}

func TestTooltipAutoClosesAfterTwoSeconds(t *testing.T) {
	t.Parallel()

	o, clock := newTestOrchestrator(t)
	o.OpenTooltip(true)
	assert.Equal(t, 1, o.Bus().Listeners(EventKeyDown))

	clock.Advance(1999 * time.Millisecond)
	assert.True(t, o.State().Tooltip.Open)

	clock.Advance(time.Millisecond)
	assert.False(t, o.State().Tooltip.Open)
	assert.Zero(t, o.Bus().Listeners(EventKeyDown))
}

func TestTooltipReopenReplacesTimer(t *testing.T) {
	t.Parallel()

	o, clock := newTestOrchestrator(t)
	o.OpenTooltip(true)
	clock.Advance(1500 * time.Millisecond)
	o.OpenTooltip(false)

	clock.Advance(1 * time.Second)
	state := o.State()
	assert.True(t, state.Tooltip.Open, "stale timer must not close the newer tooltip")
	assert.False(t, state.Tooltip.Success)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(1 * time.Second)
	assert.False(t, o.State().Tooltip.Open)
}

func TestCloseTooltipCancelsTimer(t *testing.T) {
	t.Parallel()

	o, clock := newTestOrchestrator(t)
	o.OpenTooltip(true)
	o.CloseTooltip()
	assert.False(t, o.State().Tooltip.Open)
	assert.Zero(t, clock.Pending())
}

func TestWatchReceivesTransitions(t *testing.T) {
	t.Parallel()

	o, _ := newTestOrchestrator(t)
	var seen []Kind
	cancel := o.Watch(func(s State) { seen = append(seen, s.Primary) })

	o.OpenAvatar()
	o.CloseAll()
	o.CloseAll()
	cancel()
	o.OpenProfile()

	assert.Equal(t, []Kind{KindAvatar, KindNone}, seen)
}

func TestShutdownDetachesListeners(t *testing.T) {
	t.Parallel()

	o, clock := newTestOrchestrator(t)
	o.OpenTooltip(true)
	o.Shutdown()
	assert.Zero(t, o.Bus().Listeners(EventClick))
	assert.Zero(t, clock.Pending())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "delete-confirm", KindDeleteConfirm.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
	assert.True(t, KindPreview.BindsCard())
	assert.False(t, KindAvatar.BindsCard())
}
