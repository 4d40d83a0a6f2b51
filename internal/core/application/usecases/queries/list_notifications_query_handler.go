package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	recipient := query.Recipient()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, kind, title, message, parcel_ref, is_read, created_at
		FROM notifications
		WHERE recipient_role = ? AND recipient_id = ? AND (NOT ? OR NOT is_read)
		ORDER BY created_at DESC, id
	`, recipient.Role.String(), recipient.ID, query.UnreadOnly()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inbox := make([]NotificationResponse, 0)
	for rows.Next() {
		var (
			n         NotificationResponse
			id        uuid.UUID
			parcelRef sql.NullString
		)
		if err = rows.Scan(&id, &n.Kind, &n.Title, &n.Message, &parcelRef, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if n.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if parcelRef.Valid {
			ref := parcelRef.String
			n.ParcelRef = &ref
		}
		inbox = append(inbox, n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return inbox, nil
}
