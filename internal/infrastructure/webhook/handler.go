package webhook

import (
	"context"
	"time"

	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// EventHandler forwards every dispatched domain event to the delivery queue.
type EventHandler struct {
	enqueuer ports.EventEnqueuer
}

// NewEventHandler creates the handler.
func NewEventHandler(enqueuer ports.EventEnqueuer) *EventHandler {
	return &EventHandler{enqueuer: enqueuer}
}

// EventTypes subscribes to every event type.
func (h *EventHandler) EventTypes() []domain.EventType { return nil }

// Handle enqueues the event for delivery.
func (h *EventHandler) Handle(ctx context.Context, ev domain.Event) error {
	return h.enqueuer.EnqueueDomainEvent(ctx, PayloadFromEvent(ev))
}

// PayloadFromEvent converts a domain event into its wire payload.
func PayloadFromEvent(ev domain.Event) ports.DomainEventPayload {
	return ports.DomainEventPayload{
		EventID:       ev.ID.String(),
		AggregateID:   ev.AggregateID.String(),
		AggregateName: ev.AggregateName,
		Type:          string(ev.Type),
		Data:          ev.Data,
		CreatedAt:     ev.CreatedAt.Format(time.RFC3339Nano),
	}
}

// SyncEnqueuer delivers events inline instead of queueing them, for
// deployments without Redis.
type SyncEnqueuer struct {
	emitter ports.WebhookEmitter
}

// NewSyncEnqueuer creates the inline enqueuer.
func NewSyncEnqueuer(emitter ports.WebhookEmitter) *SyncEnqueuer {
	return &SyncEnqueuer{emitter: emitter}
}

// EnqueueDomainEvent implements ports.EventEnqueuer.
func (s *SyncEnqueuer) EnqueueDomainEvent(ctx context.Context, payload ports.DomainEventPayload) error {
	return s.emitter.Emit(ctx, payload)
}

var (
	_ event.Handler       = (*EventHandler)(nil)
	_ ports.EventEnqueuer = (*SyncEnqueuer)(nil)
)
