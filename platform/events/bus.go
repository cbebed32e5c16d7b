package events

import (
	"context"
	"errors"
	"sync"

	"pos_admin_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Handlers registered
// for an event name receive every published event of that name; async
// publishing never blocks the publisher.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Compile-time check that InMemoryBus implements Bus.
var _ Bus = (*InMemoryBus)(nil)

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Unsubscribe removes all handlers registered for the event name.
func (b *InMemoryBus) Unsubscribe(eventName string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, eventName)
}

// Publish dispatches the event to all handlers asynchronously.
// Handler errors are logged, not returned; a failing subscriber must not
// affect the publishing module.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	registered := make([]Handler, len(b.handlers[event.EventName()]))
	copy(registered, b.handlers[event.EventName()])
	b.mu.RUnlock()

	for _, handler := range registered {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil && b.log != nil {
					b.log.Error("event handler panicked", "event", event.EventName(), "panic", r)
				}
			}()
			if err := h.Handle(ctx, event); err != nil && b.log != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}(handler)
	}
}

// PublishSync dispatches the event and waits for every handler, joining
// any errors.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	registered := make([]Handler, len(b.handlers[event.EventName()]))
	copy(registered, b.handlers[event.EventName()])
	b.mu.RUnlock()

	var errs []error
	for _, handler := range registered {
		if err := handler.Handle(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
