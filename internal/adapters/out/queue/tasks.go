// Package queue hands notifications to an asynq queue backed by Redis.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"

	"github.com/hibiken/asynq"
)

const (
	DefaultQueue = "notifications"

	TaskNotificationDeliver = "notification:deliver"
)

// NotificationPayload is the wire form of a notification task.
type NotificationPayload struct {
	ID            string    `json:"id"`
	RecipientRole string    `json:"recipient_role"`
	RecipientID   string    `json:"recipient_id"`
	Kind          string    `json:"kind"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	RelatedParcel *string   `json:"related_parcel,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewNotificationTask(n notification.Notification) (*asynq.Task, error) {
	payload := NotificationPayload{
		ID:            n.ID().String(),
		RecipientRole: n.Recipient().Role.String(),
		RecipientID:   n.Recipient().ID,
		Kind:          string(n.Kind()),
		Title:         n.Title(),
		Message:       n.Message(),
		CreatedAt:     n.CreatedAt(),
	}
	if ref := n.ParcelRef(); ref != nil {
		s := ref.String()
		payload.RelatedParcel = &s
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDeliver, body), nil
}

// DecodeNotificationTask rebuilds the notification carried by a task.
func DecodeNotificationTask(task *asynq.Task) (notification.Notification, error) {
	if task.Type() != TaskNotificationDeliver {
		return notification.Notification{}, fmt.Errorf("unexpected task type %q", task.Type())
	}

	var payload NotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return notification.Notification{}, fmt.Errorf("decode notification payload: %w", err)
	}

	id, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return notification.Notification{}, err
	}
	role, err := kernel.ParseRole(payload.RecipientRole)
	if err != nil {
		return notification.Notification{}, err
	}
	var ref *kernel.TrackingNumber
	if payload.RelatedParcel != nil {
		tn, parseErr := kernel.ParseTrackingNumber(*payload.RelatedParcel)
		if parseErr != nil {
			return notification.Notification{}, parseErr
		}
		ref = &tn
	}

	return notification.New(
		id,
		notification.Recipient{Role: role, ID: payload.RecipientID},
		notification.Kind(payload.Kind),
		payload.Title,
		payload.Message,
		ref,
		payload.CreatedAt,
	)
}
