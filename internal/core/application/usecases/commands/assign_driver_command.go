package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand binds an available driver to an accepted parcel.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber
	driverID       int64
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(tn kernel.TrackingNumber, driverID int64, actor kernel.Actor) (AssignDriverCommand, error) {
	var idErr error
	if driverID <= 0 {
		idErr = errs.NewValueIsInvalidError("driverID")
	}
	if err := errors.Join(tn.Validate(), idErr, actor.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		trackingNumber: tn,
		driverID:       driverID,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) TrackingNumber() kernel.TrackingNumber { return c.trackingNumber }

func (c AssignDriverCommand) DriverID() int64 { return c.driverID }

func (c AssignDriverCommand) Actor() kernel.Actor { return c.actor }
