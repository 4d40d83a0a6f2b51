package notificationrepo

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Inbox implements ports.NotificationRepository and ports.NotificationSink on one table.
type Inbox struct {
	db *gorm.DB
}

func NewInbox(db *gorm.DB) *Inbox {
	return &Inbox{db: db}
}

// Deliver stores the notification. Redelivery of a stored id is a no-op.
func (i *Inbox) Deliver(ctx context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	return i.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

func (i *Inbox) MarkRead(ctx context.Context, id kernel.UUID, recipient notification.Recipient) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := i.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ? AND recipient_role = ? AND recipient_id = ?", id.Value(), recipient.Role.String(), recipient.ID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notificationID", id.String())
	}
	return nil
}

func (i *Inbox) MarkAllRead(ctx context.Context, recipient notification.Recipient) (int64, error) {
	result := i.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("recipient_role = ? AND recipient_id = ? AND NOT is_read", recipient.Role.String(), recipient.ID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
