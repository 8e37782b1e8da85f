package popup

import "sync"

// EventType names a document-level input event.
type EventType string

const (
	EventClick   EventType = "click"
	EventKeyDown EventType = "keydown"
)

// Target identifies what a click landed on.
type Target string

const (
	// TargetOverlay is the dimmed backdrop behind an open modal.
	TargetOverlay Target = "overlay"
	// TargetSurface is the modal content itself.
	TargetSurface Target = "surface"
	TargetPage    Target = "page"
)

// KeyEscape is the key name that dismisses modals.
const KeyEscape = "Escape"

// Event is a click or key press delivered to the document.
type Event struct {
	Type   EventType
	Target Target
	Key    string
}

// Handler receives dispatched events.
type Handler func(Event)

// Bus fans document events out to the handlers subscribed for their type.
type Bus struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[EventType]map[uint64]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType]map[uint64]Handler)}
}

// Subscribe registers h for events of type t. The returned cancel removes it
// and is safe to call more than once.
func (b *Bus) Subscribe(t EventType, h Handler) (cancel func()) {
	b.mu.Lock()
	b.next++
	id := b.next
	if b.handlers[t] == nil {
		b.handlers[t] = make(map[uint64]Handler)
	}
	b.handlers[t][id] = h
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if subs, ok := b.handlers[t]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(b.handlers, t)
				}
			}
			b.mu.Unlock()
		})
	}
}

// Dispatch delivers ev to every current handler and returns how many ran.
// Handlers run without the bus lock held so they may subscribe or cancel.
func (b *Bus) Dispatch(ev Event) int {
	b.mu.RLock()
	subs := make([]Handler, 0, len(b.handlers[ev.Type]))
	for _, h := range b.handlers[ev.Type] {
		subs = append(subs, h)
	}
	b.mu.RUnlock()

	for _, h := range subs {
		h(ev)
	}
	return len(subs)
}

// Click dispatches a click on target.
func (b *Bus) Click(target Target) int {
	return b.Dispatch(Event{Type: EventClick, Target: target})
}

// KeyDown dispatches a key press.
func (b *Bus) KeyDown(key string) int {
	return b.Dispatch(Event{Type: EventKeyDown, Key: key})
}

// Listeners returns the number of handlers subscribed for t.
func (b *Bus) Listeners(t EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}
