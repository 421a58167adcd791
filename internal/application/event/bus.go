// Package event provides a typed in-process publish/subscribe bus. Reference
// data mutations publish events that cache invalidation subscribes to, so the
// write path never knows about the cache.
package event

import (
	"context"
	"log/slog"
	"sync"
)

// Event is implemented by every event type carried on the bus.
type Event interface {
	// Name identifies the event type for subscription routing.
	Name() string
}

// Handler consumes one event. Handlers run synchronously on the publishing
// goroutine; a failing handler is logged and does not stop delivery.
type Handler func(ctx context.Context, e Event) error

// Bus routes published events to the handlers subscribed to their name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewBus creates an empty event bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for the named event type.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish delivers the event to every subscribed handler in registration
// order. Handler errors are logged, never returned: publishing is best-effort
// from the caller's point of view.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := b.handlers[e.Name()]
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			b.logger.Error("event handler failed",
				"event", e.Name(),
				"error", err)
		}
	}
}
