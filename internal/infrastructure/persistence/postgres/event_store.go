package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/domain"
)

// EventStore is a catch-all event handler appending every domain event to the
// domain_events audit table.
type EventStore struct {
	pool *pgxpool.Pool
}

// NewEventStore creates the store.
func NewEventStore(pool *pgxpool.Pool) *EventStore {
	return &EventStore{pool: pool}
}

// EventTypes subscribes to every event type.
func (s *EventStore) EventTypes() []domain.EventType { return nil }

// Handle appends the event.
func (s *EventStore) Handle(ctx context.Context, ev domain.Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO domain_events (id, aggregate_id, aggregate_name, event_type, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.AggregateID, ev.AggregateName, string(ev.Type), data, ev.CreatedAt)
	return err
}

var _ event.Handler = (*EventStore)(nil)
