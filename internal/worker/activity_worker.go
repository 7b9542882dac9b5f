package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"studyprep-api/internal/model"
	"studyprep-api/internal/platform/rabbitmq"
)

type ActivityStore interface {
	Create(ctx context.Context, event *model.ActivityEvent) error
}

// ActivityWorker consumes record events and stores them as activity rows.
type ActivityWorker struct {
	conn      *amqp.Connection
	store     ActivityStore
	queueName string
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityWorker(conn *amqp.Connection, store ActivityStore, queueName string, logger *slog.Logger) *ActivityWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		logger:    logger.With(slog.String("component", "activity_worker")),
	}
}

func (w *ActivityWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					w.logger.Error("handle record event failed", slog.String("error", err.Error()))
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

// handle decodes one delivery body and persists it.
func (w *ActivityWorker) handle(ctx context.Context, body []byte) error {
	event, err := decodeEvent(body)
	if err != nil {
		return err
	}
	if err := w.store.Create(ctx, event); err != nil {
		return err
	}
	w.logger.Debug("activity recorded",
		slog.String("kind", event.Kind),
		slog.Uint64("record_id", uint64(event.RecordID)),
	)
	return nil
}

func decodeEvent(body []byte) (*model.ActivityEvent, error) {
	var event model.RecordEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decode record event failed: %w", err)
	}
	if event.Owner == "" || event.Kind == "" {
		return nil, fmt.Errorf("record event missing owner or kind")
	}
	return &model.ActivityEvent{
		Owner:      event.Owner,
		Kind:       event.Kind,
		RecordID:   event.RecordID,
		Summary:    event.Summary,
		OccurredAt: event.OccurredAt,
	}, nil
}

func (w *ActivityWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
