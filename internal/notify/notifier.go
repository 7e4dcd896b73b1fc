package notify

import "context"

// Event is one notification published on a shipment or ticket change.
type Event struct {
	Type      string                 `json:"type"`
	RelatedID string                 `json:"related_id"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Notifier publishes events to the notification system. Calls are best-effort:
// callers log failures and never let them affect the primary operation.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Noop is a Notifier that discards every event. Used when AMQP is not
// configured and in tests.
type Noop struct{}

func (Noop) Notify(ctx context.Context, event Event) error { return nil }
