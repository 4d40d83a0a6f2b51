package queue

import (
	"log/slog"

	outqueue "logistics/internal/adapters/out/queue"

	"github.com/hibiken/asynq"
)

// Worker runs the asynq server that drains the notification queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

func NewWorker(opt asynq.RedisClientOpt, concurrency int, handler *NotificationTaskHandler, logger *slog.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 10
	}
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{outqueue.DefaultQueue: 1},
	})
	mux := asynq.NewServeMux()
	handler.Register(mux)

	return &Worker{
		server: server,
		mux:    mux,
		logger: logger.With("component", "queue_worker"),
	}
}

// Start runs the server in the background.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	w.logger.Info("Queue worker started")
	return nil
}

func (w *Worker) Stop() {
	w.server.Shutdown()
	w.logger.Info("Queue worker stopped")
}
