package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads the actor's own inbox, newest first.
type ListNotificationsQuery struct {
	recipient  notification.Recipient
	unreadOnly bool
	guard      guard.ConstructorGuard
}

func NewListNotificationsQuery(actor kernel.Actor, unreadOnly bool) (ListNotificationsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{
		recipient:  notification.RecipientFor(actor),
		unreadOnly: unreadOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Recipient() notification.Recipient { return q.recipient }

func (q ListNotificationsQuery) UnreadOnly() bool { return q.unreadOnly }

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}
