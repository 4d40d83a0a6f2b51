package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrRejectParcelCommandIsNotConstructed = errors.New(
	"RejectParcelCommand must be created via NewRejectParcelCommand constructor",
)

// RejectParcelCommand ends a requested parcel in rejected. The reason is optional
// and is passed on to the client notification.
type RejectParcelCommand struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber
	actor          kernel.Actor
	reason         string

	guard guard.ConstructorGuard
}

func NewRejectParcelCommand(tn kernel.TrackingNumber, actor kernel.Actor, reason string) (RejectParcelCommand, error) {
	if err := errors.Join(tn.Validate(), actor.Validate()); err != nil {
		return RejectParcelCommand{}, err
	}

	return RejectParcelCommand{
		trackingNumber: tn,
		actor:          actor,
		reason:         strings.TrimSpace(reason),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RejectParcelCommand) Validate() error {
	return c.guard.Validate(ErrRejectParcelCommandIsNotConstructed)
}

func (c RejectParcelCommand) TrackingNumber() kernel.TrackingNumber { return c.trackingNumber }

func (c RejectParcelCommand) Actor() kernel.Actor { return c.actor }

func (c RejectParcelCommand) Reason() string { return c.reason }
