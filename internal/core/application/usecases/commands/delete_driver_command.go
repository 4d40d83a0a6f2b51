package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrDeleteDriverCommandIsNotConstructed = errors.New(
	"DeleteDriverCommand must be created via NewDeleteDriverCommand constructor",
)

// DeleteDriverCommand removes a driver that holds no active parcel.
type DeleteDriverCommand struct { //nolint:recvcheck //using for validation
	driverID int64

	guard guard.ConstructorGuard
}

func NewDeleteDriverCommand(actor kernel.Actor, driverID int64) (DeleteDriverCommand, error) {
	var idErr error
	if driverID <= 0 {
		idErr = errs.NewValueIsInvalidError("driverID")
	}
	if err := errors.Join(requireAdmin(actor, "delete drivers"), idErr); err != nil {
		return DeleteDriverCommand{}, err
	}

	return DeleteDriverCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteDriverCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDriverCommandIsNotConstructed)
}

func (c DeleteDriverCommand) DriverID() int64 { return c.driverID }
