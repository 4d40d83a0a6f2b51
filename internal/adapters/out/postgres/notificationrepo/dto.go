// Package notificationrepo stores notifications in per-recipient inboxes.
package notificationrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is a row of the notifications table.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientRole string
	RecipientID   string
	Kind          string
	Title         string
	Message       string
	ParcelRef     *string
	IsRead        bool
	CreatedAt     time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:            n.ID().Value(),
		RecipientRole: n.Recipient().Role.String(),
		RecipientID:   n.Recipient().ID,
		Kind:          string(n.Kind()),
		Title:         n.Title(),
		Message:       n.Message(),
		IsRead:        n.IsRead(),
		CreatedAt:     n.CreatedAt(),
	}
	if ref := n.ParcelRef(); ref != nil {
		s := ref.String()
		dto.ParcelRef = &s
	}
	return dto
}

// ToDomain rebuilds a notification from its row.
func ToDomain(dto NotificationDTO) (notification.Notification, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return notification.Notification{}, err
	}
	role, err := kernel.ParseRole(dto.RecipientRole)
	if err != nil {
		return notification.Notification{}, err
	}
	kind, err := notification.ParseKind(dto.Kind)
	if err != nil {
		return notification.Notification{}, err
	}

	var ref *kernel.TrackingNumber
	if dto.ParcelRef != nil {
		tn, tnErr := kernel.ParseTrackingNumber(*dto.ParcelRef)
		if tnErr != nil {
			return notification.Notification{}, tnErr
		}
		ref = &tn
	}

	return notification.Restore(
		id,
		notification.Recipient{Role: role, ID: dto.RecipientID},
		kind,
		dto.Title,
		dto.Message,
		ref,
		dto.CreatedAt,
		dto.IsRead,
	)
}
