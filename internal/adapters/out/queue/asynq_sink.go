package queue

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/notification"

	"github.com/hibiken/asynq"
)

const defaultMaxRetry = 10

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqSink enqueues notifications for the queue worker. The notification id
// is the task id, so a redelivered notification is not enqueued twice.
type AsynqSink struct {
	client   enqueuer
	queue    string
	maxRetry int
}

func NewAsynqSink(client enqueuer, queue string, maxRetry int) *AsynqSink {
	if queue == "" {
		queue = DefaultQueue
	}
	if maxRetry <= 0 {
		maxRetry = defaultMaxRetry
	}
	return &AsynqSink{client: client, queue: queue, maxRetry: maxRetry}
}

// Deliver implements ports.NotificationSink.
func (s *AsynqSink) Deliver(ctx context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	task, err := NewNotificationTask(n)
	if err != nil {
		return err
	}

	_, err = s.client.EnqueueContext(ctx, task,
		asynq.Queue(s.queue),
		asynq.TaskID(n.ID().String()),
		asynq.MaxRetry(s.maxRetry),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// RedisOpt builds the asynq connection options shared by client and server.
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
}
