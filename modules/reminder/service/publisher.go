package service

import (
	"context"

	"eventrely-api/core/constants"
	"eventrely-api/core/logger"
	"eventrely-api/core/queue"
	"eventrely-api/modules/reminder/domain"
)

// EventPublisher hands domain events to whoever consumes them.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DomainEvent) error
}

type queuePublisher struct {
	enqueuer queue.Enqueuer
}

// NewQueuePublisher publishes domain events as asynq tasks.
func NewQueuePublisher(enqueuer queue.Enqueuer) EventPublisher {
	return &queuePublisher{enqueuer: enqueuer}
}

func (p *queuePublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	return p.enqueuer.Enqueue(ctx, constants.TaskTypeDomainEvent, event)
}

type logPublisher struct{}

// NewLogPublisher only logs domain events; used when the queue is disabled.
func NewLogPublisher() EventPublisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, event domain.DomainEvent) error {
	logger.Info("DomainEvent",
		"type", event.Type,
		"event_id", event.EventID,
		"user_id", event.UserID,
		"domain_event_id", event.ID,
	)
	return nil
}
