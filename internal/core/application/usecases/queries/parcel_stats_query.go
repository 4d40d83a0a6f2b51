package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/pkg/guard"
)

var ErrParcelStatsQueryIsNotConstructed = errors.New(
	"ParcelStatsQuery must be created via NewParcelStatsQuery constructor",
)

// ParcelStatsQuery counts the parcels the actor can see per status, together
// with the actor's unread notifications.
type ParcelStatsQuery struct {
	actor     kernel.Actor
	recipient notification.Recipient
	guard     guard.ConstructorGuard
}

func NewParcelStatsQuery(actor kernel.Actor) (ParcelStatsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ParcelStatsQuery{}, err
	}
	return ParcelStatsQuery{
		actor:     actor,
		recipient: notification.RecipientFor(actor),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ParcelStatsQuery) Actor() kernel.Actor { return q.actor }

func (q ParcelStatsQuery) Recipient() notification.Recipient { return q.recipient }

func (q ParcelStatsQuery) Validate() error {
	return q.guard.Validate(ErrParcelStatsQueryIsNotConstructed)
}
