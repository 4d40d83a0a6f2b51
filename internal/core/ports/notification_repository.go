package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
)

// NotificationRepository manages a recipient's inbox.
type NotificationRepository interface {
	// MarkRead fails with errs.ErrObjectNotFound unless the notification belongs to recipient.
	MarkRead(ctx context.Context, id kernel.UUID, recipient notification.Recipient) error

	MarkAllRead(ctx context.Context, recipient notification.Recipient) (int64, error)
}

// NotificationSink is the delivery endpoint of the dispatcher. Deliver must be
// idempotent per notification id, since delivery is at-least-once.
type NotificationSink interface {
	Deliver(ctx context.Context, n notification.Notification) error
}
