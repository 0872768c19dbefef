package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/ports"
)

const TypeDomainEvent = "event:deliver"

// TaskEnqueuer hands domain events to Asynq for asynchronous webhook
// delivery.
type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

// EnqueueDomainEvent implements ports.EventEnqueuer.
func (q *TaskEnqueuer) EnqueueDomainEvent(ctx context.Context, payload ports.DomainEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeDomainEvent, body, asynq.MaxRetry(5))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event_id", payload.EventID).Msg("enqueue domain event failed")
		return err
	}
	return nil
}

var _ ports.EventEnqueuer = (*TaskEnqueuer)(nil)
