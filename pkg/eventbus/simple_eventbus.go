package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// SimpleEventBus is a synchronous in-process Bus. Handlers run in subscription
// order on the publishing goroutine.
type SimpleEventBus struct {
	handlers map[string][]HandlerFunc
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewSimpleEventBus creates an empty bus. A nil logger falls back to slog.Default.
func NewSimpleEventBus(logger *slog.Logger) *SimpleEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimpleEventBus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger,
	}
}

// Publish delivers event to every handler subscribed to its type.
// All handlers run; their errors are joined.
func (b *SimpleEventBus) Publish(ctx context.Context, event Event) error {
	b.logger.Debug("EventBus.Publish", "event_type", event.Type(), "concrete_type", fmt.Sprintf("%T", event))

	b.mu.RLock()
	handlers := append([]HandlerFunc(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("EventBus.Publish: handler failed", "event_type", event.Type(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers handler for eventType.
func (b *SimpleEventBus) Subscribe(eventType string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
