package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAcceptParcelCommandIsNotConstructed = errors.New(
	"AcceptParcelCommand must be created via NewAcceptParcelCommand constructor",
)

// AcceptParcelCommand moves a requested parcel to accepted. Role checks happen in
// the lifecycle so that error precedence stays in one place.
type AcceptParcelCommand struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewAcceptParcelCommand(tn kernel.TrackingNumber, actor kernel.Actor) (AcceptParcelCommand, error) {
	if err := errors.Join(tn.Validate(), actor.Validate()); err != nil {
		return AcceptParcelCommand{}, err
	}

	return AcceptParcelCommand{
		trackingNumber: tn,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptParcelCommand) Validate() error {
	return c.guard.Validate(ErrAcceptParcelCommandIsNotConstructed)
}

func (c AcceptParcelCommand) TrackingNumber() kernel.TrackingNumber { return c.trackingNumber }

func (c AcceptParcelCommand) Actor() kernel.Actor { return c.actor }
