package domain

import "context"

// EventRequestCreated is published after a blood request is stored.
const EventRequestCreated = "blood.request.created"

// EventPublisher delivers domain events to an external bus. key groups
// events that must stay ordered.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, key string) error
}
