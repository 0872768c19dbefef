package event

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/domain"
)

// Handler consumes domain events. EventTypes declares which types the
// handler accepts; an empty slice subscribes to every type.
type Handler interface {
	EventTypes() []domain.EventType
	Handle(ctx context.Context, ev domain.Event) error
}

// Dispatcher delivers drained aggregate events to registered handlers after
// a successful command. Handler failures are logged per event and never
// propagate: by the time Dispatch runs the mutation is already committed.
type Dispatcher struct {
	byType   map[domain.EventType][]Handler
	catchAll []Handler
	log      zerolog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		byType: make(map[domain.EventType][]Handler),
		log:    log,
	}
}

// RegisterHandler subscribes the handler to its declared event types.
func (d *Dispatcher) RegisterHandler(h Handler) {
	types := h.EventTypes()
	if len(types) == 0 {
		d.catchAll = append(d.catchAll, h)
		return
	}
	for _, t := range types {
		d.byType[t] = append(d.byType[t], h)
	}
}

// Dispatch delivers each event to every matching handler, sequentially.
func (d *Dispatcher) Dispatch(ctx context.Context, events []domain.Event) {
	for _, ev := range events {
		for _, h := range d.catchAll {
			d.deliver(ctx, h, ev)
		}
		for _, h := range d.byType[ev.Type] {
			d.deliver(ctx, h, ev)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, h Handler, ev domain.Event) {
	if err := h.Handle(ctx, ev); err != nil {
		d.log.Warn().
			Err(err).
			Str("event_id", ev.ID.String()).
			Str("event_type", string(ev.Type)).
			Str("aggregate_id", ev.AggregateID.String()).
			Msg("event handler failed")
	}
}
