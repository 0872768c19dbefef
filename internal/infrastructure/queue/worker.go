package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/ports"
)

// Worker runs Asynq task handlers delivering queued domain events to the
// webhook emitter.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, emitter ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, emitter: emitter, log: log}
	mux.HandleFunc(TypeDomainEvent, w.handleDomainEvent)
	return w
}

func (w *Worker) handleDomainEvent(ctx context.Context, t *asynq.Task) error {
	var payload ports.DomainEventPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		w.log.Error().Err(err).Msg("domain event task payload invalid")
		return err
	}
	if err := w.emitter.Emit(ctx, payload); err != nil {
		w.log.Warn().
			Err(err).
			Str("event_id", payload.EventID).
			Str("event_type", payload.Type).
			Msg("webhook delivery failed")
		return err
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
