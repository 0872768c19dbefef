package ports

import "context"

// DomainEventPayload is the JSON body delivered to the webhook endpoint for
// each dispatched domain event.
type DomainEventPayload struct {
	EventID       string                 `json:"eventId"`
	AggregateID   string                 `json:"aggregateId"`
	AggregateName string                 `json:"aggregateName"`
	Type          string                 `json:"type"`
	Data          map[string]interface{} `json:"data,omitempty"`
	CreatedAt     string                 `json:"createdAt"`
}

// WebhookEmitter delivers a domain event to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, payload DomainEventPayload) error
}

// EventEnqueuer hands a domain event to the async delivery queue. Failures
// are best-effort: the dispatcher logs and moves on.
type EventEnqueuer interface {
	EnqueueDomainEvent(ctx context.Context, payload DomainEventPayload) error
}
