package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/pkg/guard"
)

var (
	ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
		"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
	)
	ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
		"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
	)
)

// MarkNotificationReadCommand marks one notification in the actor's own inbox as read.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	recipient notification.Recipient

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(actor kernel.Actor, id kernel.UUID) (MarkNotificationReadCommand, error) {
	if err := errors.Join(actor.Validate(), id.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return MarkNotificationReadCommand{
		id:        id,
		recipient: notification.RecipientFor(actor),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) ID() kernel.UUID { return c.id }

func (c MarkNotificationReadCommand) Recipient() notification.Recipient { return c.recipient }

// MarkAllNotificationsReadCommand clears the actor's unread inbox.
type MarkAllNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	recipient notification.Recipient

	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsReadCommand(actor kernel.Actor) (MarkAllNotificationsReadCommand, error) {
	if err := actor.Validate(); err != nil {
		return MarkAllNotificationsReadCommand{}, err
	}

	return MarkAllNotificationsReadCommand{
		recipient: notification.RecipientFor(actor),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

func (c MarkAllNotificationsReadCommand) Recipient() notification.Recipient { return c.recipient }
