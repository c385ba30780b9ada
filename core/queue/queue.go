package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"eventrely-api/core/constants"
	"eventrely-api/core/logger"

	"github.com/hibiken/asynq"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) clientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}
}

// Enqueuer puts JSON payloads on the task queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

type Client struct {
	client    *asynq.Client
	queueName string
}

var _ Enqueuer = (*Client)(nil)

func NewClient(cfg RedisConfig, queueName string) *Client {
	if queueName == "" {
		queueName = constants.DefaultQueueName
	}
	return &Client{
		client:    asynq.NewClient(cfg.clientOpt()),
		queueName: queueName,
	}
}

// NewTask encodes payload as JSON into an asynq task.
func NewTask(taskType string, payload any) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, raw), nil
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	task, err := NewTask(taskType, payload)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queueName),
		asynq.MaxRetry(constants.TaskMaxRetry),
	)
	if err != nil {
		logger.Error("Queue:Enqueue:Error", "error", err, "task_type", taskType)
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	logger.Debug("Queue:Enqueue:Success", "task_type", taskType, "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker runs asynq handlers in-process.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(cfg RedisConfig, queueName string, concurrency int) *Worker {
	if queueName == "" {
		queueName = constants.DefaultQueueName
	}
	server := asynq.NewServer(cfg.clientOpt(), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queueName: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "error", err, "task_type", task.Type())
		}),
	})
	return &Worker{server: server, mux: asynq.NewServeMux()}
}

func (w *Worker) HandleFunc(taskType string, handler func(context.Context, *asynq.Task) error) {
	w.mux.HandleFunc(taskType, handler)
}

// Start begins processing in background goroutines.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Info("Queue worker started")
	return nil
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
	logger.Info("Queue worker stopped")
}
