package webhook

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/ports"
)

// NoopEmitter discards domain events when no webhook URL is configured.
type NoopEmitter struct{}

// NewNoopEmitter returns a WebhookEmitter that discards all events.
func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

// Emit implements ports.WebhookEmitter.
func (e *NoopEmitter) Emit(ctx context.Context, payload ports.DomainEventPayload) error {
	return nil
}

var _ ports.WebhookEmitter = (*NoopEmitter)(nil)
