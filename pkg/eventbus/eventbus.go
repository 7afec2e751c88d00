package eventbus

import "context"

// Event is anything that can be published on a Bus.
type Event interface {
	Type() string
}

// HandlerFunc handles a published event.
type HandlerFunc func(ctx context.Context, event Event) error

// Publisher publishes events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the contract for publishing and subscribing to events.
type Bus interface {
	Publisher
	Subscribe(eventType string, handler HandlerFunc)
}
