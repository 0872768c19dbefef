package queue

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

// EnqueueDomainEvent implements ports.EventEnqueuer.
func (q *NoopEnqueuer) EnqueueDomainEvent(ctx context.Context, payload ports.DomainEventPayload) error {
	return nil
}

var _ ports.EventEnqueuer = (*NoopEnqueuer)(nil)
