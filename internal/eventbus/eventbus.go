package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"combobox/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventMenuOpened     = domain.EventMenuOpened
	EventMenuClosed     = domain.EventMenuClosed
	EventOpenRequested  = domain.EventOpenRequested
	EventItemSelected   = domain.EventItemSelected
	EventHighlightMoved = domain.EventHighlightMoved
	EventInputChanged   = domain.EventInputChanged
	EventOutsideClick   = domain.EventOutsideClick
	EventError          = domain.EventError
)

// Re-export domain event types
type MenuOpenedEvent = domain.MenuOpenedEvent
type MenuClosedEvent = domain.MenuClosedEvent
type OpenRequestedEvent = domain.OpenRequestedEvent
type ItemSelectedEvent = domain.ItemSelectedEvent
type HighlightMovedEvent = domain.HighlightMovedEvent
type InputChangedEvent = domain.InputChangedEvent
type OutsideClickEvent = domain.OutsideClickEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event DomainEvent)                                  {}
func (n *NullBus) Subscribe(eventType EventType, handler EventHandler) func() { return func() {} }

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]*subscription
	quit     chan struct{}
	once     sync.Once
}

type subscription struct {
	handler EventHandler
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]*subscription),
		quit:     make(chan struct{}),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		return
	default:
	}

	// Highlight moves fire on every mouse sweep, keep them out of the log
	switch event.Type() {
	case EventHighlightMoved:
	default:
		log.Printf("EventBus: publishing event %s", event.Type())
	}

	b.mu.RLock()
	subs := b.handlers[event.Type()]
	subsCopy := make([]*subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.RUnlock()

	for _, sub := range subsCopy {
		b.deliver(sub.handler, event)
	}
}

// deliver calls a handler, recovering from panics so one bad
// subscriber cannot break the publisher
func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{handler: handler}
	b.handlers[eventType] = append(b.handlers[eventType], sub)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s == sub {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the bus; further publishes are dropped
func (b *bus) Close() {
	b.once.Do(func() { close(b.quit) })
}
