// Package popup tracks which modal is open, keeps the primary modals mutually
// exclusive, and owns dismissal: overlay clicks, Escape, and the result
// tooltip's timed auto-close.
package popup

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/5hraddha/around/internal/around/entity"
	"github.com/5hraddha/around/internal/around/schedule"
	"github.com/5hraddha/around/internal/platform/logging"
	"github.com/5hraddha/around/internal/platform/timeouts"
)

// Kind names a primary modal.
type Kind int

const (
	KindNone Kind = iota
	KindProfile
	KindAvatar
	KindAddPlace
	KindPreview
	KindDeleteConfirm
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "closed"
	case KindProfile:
		return "profile"
	case KindAvatar:
		return "avatar"
	case KindAddPlace:
		return "add-place"
	case KindPreview:
		return "preview"
	case KindDeleteConfirm:
		return "delete-confirm"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// BindsCard reports whether the modal displays a specific card.
func (k Kind) BindsCard() bool {
	return k == KindPreview || k == KindDeleteConfirm
}

// Tooltip is the registration result overlay. It is independent of the
// primary modals.
type Tooltip struct {
	Open    bool
	Success bool
}

// State is a snapshot of the orchestrator.
type State struct {
	Primary   Kind
	Card      *entity.Card
	Tooltip   Tooltip
	Listening bool
}

// IsOpen reports whether k is the open primary modal.
func (s State) IsOpen(k Kind) bool {
	return k != KindNone && s.Primary == k
}

// AnyOpen reports whether a primary modal or the tooltip is showing.
func (s State) AnyOpen() bool {
	return s.Primary != KindNone || s.Tooltip.Open
}

// Orchestrator is the modal state machine.
type Orchestrator struct {
	mu       sync.Mutex
	primary  Kind
	card     *entity.Card
	tooltip  Tooltip
	detach   []func()
	bus      *Bus
	slot     *schedule.Slot
	autoHide time.Duration
	log      *logrus.Entry

	watchMu  sync.Mutex
	watchSeq uint64
	watchers map[uint64]func(State)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithAutoClose overrides the tooltip auto-close delay.
func WithAutoClose(d time.Duration) Option {
	return func(o *Orchestrator) { o.autoHide = d }
}

// New returns a closed orchestrator listening on bus. A nil scheduler uses
// the wall clock.
func New(bus *Bus, sched schedule.Scheduler, log *logrus.Entry, opts ...Option) *Orchestrator {
	if bus == nil {
		bus = NewBus()
	}
	o := &Orchestrator{
		bus:      bus,
		slot:     schedule.NewSlot(sched),
		autoHide: timeouts.TooltipAutoClose,
		log:      logging.Component(log, "popup"),
		watchers: make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Bus returns the event bus the orchestrator listens on.
func (o *Orchestrator) Bus() *Bus { return o.bus }

// Open shows the primary modal k, implicitly closing any other primary modal.
// Preview and delete-confirm require a card; other kinds ignore it.
func (o *Orchestrator) Open(k Kind, card *entity.Card) error {
	if k == KindNone {
		return fmt.Errorf("open popup: kind is required")
	}
	if k.BindsCard() && card == nil {
		return fmt.Errorf("open %s popup: card is required", k)
	}
	if !k.BindsCard() {
		card = nil
	}

	o.mu.Lock()
	previous := o.primary
	o.primary = k
	o.card = card
	o.syncListenersLocked()
	state := o.stateLocked()
	o.mu.Unlock()

	if previous != KindNone && previous != k {
		o.log.WithFields(logrus.Fields{"from": previous.String(), "to": k.String()}).Debug("replaced open popup")
	} else {
		o.log.WithField("popup", k.String()).Debug("opened popup")
	}
	o.notify(state)
	return nil
}

// OpenProfile shows the profile editor.
func (o *Orchestrator) OpenProfile() { _ = o.Open(KindProfile, nil) }

// OpenAvatar shows the avatar editor.
func (o *Orchestrator) OpenAvatar() { _ = o.Open(KindAvatar, nil) }

// OpenAddPlace shows the add-place form.
func (o *Orchestrator) OpenAddPlace() { _ = o.Open(KindAddPlace, nil) }

// OpenPreview shows card full size.
func (o *Orchestrator) OpenPreview(card *entity.Card) error { return o.Open(KindPreview, card) }

// OpenDeleteConfirm asks to confirm deleting card.
func (o *Orchestrator) OpenDeleteConfirm(card *entity.Card) error {
	return o.Open(KindDeleteConfirm, card)
}

// OpenTooltip shows the result tooltip over whatever else is open and
// restarts its auto-close timer.
func (o *Orchestrator) OpenTooltip(success bool) {
	o.mu.Lock()
	o.tooltip = Tooltip{Open: true, Success: success}
	o.syncListenersLocked()
	state := o.stateLocked()
	o.mu.Unlock()

	o.slot.Schedule(o.autoHide, o.expireTooltip)
	o.log.WithField("success", success).Debug("opened result tooltip")
	o.notify(state)
}

// CloseTooltip hides the tooltip and cancels its timer.
func (o *Orchestrator) CloseTooltip() {
	o.slot.Cancel()
	o.closeTooltip()
}

// CloseAll clears every modal, the tooltip and any bound card.
func (o *Orchestrator) CloseAll() {
	o.slot.Cancel()

	o.mu.Lock()
	changed := o.primary != KindNone || o.card != nil || o.tooltip.Open
	o.primary = KindNone
	o.card = nil
	o.tooltip = Tooltip{}
	o.syncListenersLocked()
	state := o.stateLocked()
	o.mu.Unlock()

	if changed {
		o.log.Debug("closed all popups")
		o.notify(state)
	}
}

// State returns the current snapshot.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateLocked()
}

// Watch registers fn to receive the state after every transition. Call the
// returned cancel to stop.
func (o *Orchestrator) Watch(fn func(State)) (cancel func()) {
	o.watchMu.Lock()
	o.watchSeq++
	id := o.watchSeq
	o.watchers[id] = fn
	o.watchMu.Unlock()
	return func() {
		o.watchMu.Lock()
		delete(o.watchers, id)
		o.watchMu.Unlock()
	}
}

// Shutdown cancels the tooltip timer and detaches listeners.
func (o *Orchestrator) Shutdown() {
	o.slot.Cancel()
	o.mu.Lock()
	for _, cancel := range o.detach {
		cancel()
	}
	o.detach = nil
	o.mu.Unlock()
}

func (o *Orchestrator) expireTooltip() {
	o.log.Debug("result tooltip auto-closed")
	o.closeTooltip()
}

func (o *Orchestrator) closeTooltip() {
	o.mu.Lock()
	if !o.tooltip.Open {
		o.mu.Unlock()
		return
	}
	o.tooltip = Tooltip{Success: o.tooltip.Success}
	o.syncListenersLocked()
	state := o.stateLocked()
	o.mu.Unlock()
	o.notify(state)
}

// syncListenersLocked attaches the dismissal handlers while anything is open
// and detaches them once nothing is.
func (o *Orchestrator) syncListenersLocked() {
	open := o.primary != KindNone || o.tooltip.Open
	switch {
	case open && o.detach == nil:
		o.detach = []func(){
			o.bus.Subscribe(EventClick, o.handleClick),
			o.bus.Subscribe(EventKeyDown, o.handleKeyDown),
		}
	case !open && o.detach != nil:
		for _, cancel := range o.detach {
			cancel()
		}
		o.detach = nil
	}
}

func (o *Orchestrator) handleClick(ev Event) {
	if ev.Target == TargetOverlay {
		o.CloseAll()
	}
}

func (o *Orchestrator) handleKeyDown(ev Event) {
	if ev.Key == KeyEscape {
		o.CloseAll()
	}
}

func (o *Orchestrator) stateLocked() State {
	return State{
		Primary:   o.primary,
		Card:      o.card,
		Tooltip:   o.tooltip,
		Listening: o.detach != nil,
	}
}

func (o *Orchestrator) notify(state State) {
	o.watchMu.Lock()
	fns := make([]func(State), 0, len(o.watchers))
	for _, fn := range o.watchers {
		fns = append(fns, fn)
	}
	o.watchMu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}
