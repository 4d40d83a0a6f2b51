package commands

import (
	"errors"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateDriverCommandIsNotConstructed = errors.New(
	"UpdateDriverCommand must be created via NewUpdateDriverCommand constructor",
)

// UpdateDriverCommand replaces a driver's profile. Availability is never part of an edit.
type UpdateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID int64
	profile  driver.Profile

	guard guard.ConstructorGuard
}

func NewUpdateDriverCommand(actor kernel.Actor, driverID int64, profile driver.Profile) (UpdateDriverCommand, error) {
	var idErr error
	if driverID <= 0 {
		idErr = errs.NewValueIsInvalidError("driverID")
	}
	if err := errors.Join(requireAdmin(actor, "edit drivers"), idErr); err != nil {
		return UpdateDriverCommand{}, err
	}

	return UpdateDriverCommand{
		driverID: driverID,
		profile:  profile,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverCommandIsNotConstructed)
}

func (c UpdateDriverCommand) DriverID() int64 { return c.driverID }

func (c UpdateDriverCommand) Profile() driver.Profile { return c.profile }
