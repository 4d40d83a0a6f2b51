// Package queue consumes notification tasks from asynq into the inbox.
package queue

import (
	"context"
	"fmt"
	"log/slog"

	outqueue "logistics/internal/adapters/out/queue"
	"logistics/internal/core/ports"

	"github.com/hibiken/asynq"
)

// NotificationTaskHandler writes queued notifications to the inbox. Malformed
// tasks are skipped rather than retried.
type NotificationTaskHandler struct {
	inbox  ports.NotificationSink
	logger *slog.Logger
}

func NewNotificationTaskHandler(inbox ports.NotificationSink, logger *slog.Logger) *NotificationTaskHandler {
	return &NotificationTaskHandler{
		inbox:  inbox,
		logger: logger.With("component", "notification_task_handler"),
	}
}

func (h *NotificationTaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	n, err := outqueue.DecodeNotificationTask(task)
	if err != nil {
		h.logger.WarnContext(ctx, "Skipping malformed notification task", "error", err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	if err = h.inbox.Deliver(ctx, n); err != nil {
		h.logger.ErrorContext(ctx, "Failed to store notification",
			"notification_id", n.ID().String(), "error", err)
		return err
	}
	return nil
}

// Register mounts the handler on mux.
func (h *NotificationTaskHandler) Register(mux *asynq.ServeMux) {
	mux.Handle(outqueue.TaskNotificationDeliver, h)
}
