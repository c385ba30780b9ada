package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"eventrely-api/core/constants"
	"eventrely-api/core/logger"
	"eventrely-api/core/queue"
	"eventrely-api/modules/reminder/domain"

	"github.com/hibiken/asynq"
)

// DomainEventHandler consumes reminder domain events from the task queue.
type DomainEventHandler struct{}

func NewDomainEventHandler() *DomainEventHandler {
	return &DomainEventHandler{}
}

// Register attaches the handler to w.
func (h *DomainEventHandler) Register(w *queue.Worker) {
	w.HandleFunc(constants.TaskTypeDomainEvent, h.ProcessTask)
}

func (h *DomainEventHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var event domain.DomainEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		logger.Error("DomainEventHandler:ProcessTask:Decode", "error", err)
		return fmt.Errorf("decode domain event: %v: %w", err, asynq.SkipRetry)
	}
	if event.Type == "" || event.EventID == "" {
		return fmt.Errorf("domain event without type or event id: %w", asynq.SkipRetry)
	}

	args := []any{
		"domain_event_id", event.ID,
		"type", event.Type,
		"event_id", event.EventID,
		"user_id", event.UserID,
		"occurred_at", event.OccurredAt,
	}
	if len(event.UpdatedFields) > 0 {
		args = append(args, "updated_fields", event.UpdatedFields)
	}
	logger.Info("DomainEventHandler:ProcessTask", args...)
	return nil
}
