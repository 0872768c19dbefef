package event

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/domain"
)

// LogHandler writes every domain event to the structured log.
type LogHandler struct {
	log zerolog.Logger
}

// NewLogHandler creates a catch-all logging handler.
func NewLogHandler(log zerolog.Logger) *LogHandler {
	return &LogHandler{log: log}
}

// EventTypes returns nil: the handler subscribes to all event types.
func (h *LogHandler) EventTypes() []domain.EventType { return nil }

// Handle logs the event.
func (h *LogHandler) Handle(ctx context.Context, ev domain.Event) error {
	h.log.Info().
		Str("event_id", ev.ID.String()).
		Str("event_type", string(ev.Type)).
		Str("aggregate", ev.AggregateName).
		Str("aggregate_id", ev.AggregateID.String()).
		Msg("domain_event")
	return nil
}

var _ Handler = (*LogHandler)(nil)
