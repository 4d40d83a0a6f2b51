package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrReportDriverLocationCommandIsNotConstructed = errors.New(
	"ReportDriverLocationCommand must be created via NewReportDriverLocationCommand constructor",
)

// ReportDriverLocationCommand ingests a location report. Drivers may only report
// for themselves; admins may correct any driver.
type ReportDriverLocationCommand struct { //nolint:recvcheck //using for validation
	driverID     int64
	locationText string
	location     *kernel.Location

	guard guard.ConstructorGuard
}

func NewReportDriverLocationCommand(
	actor kernel.Actor,
	driverID int64,
	locationText string,
	location *kernel.Location,
) (ReportDriverLocationCommand, error) {
	if err := actor.Validate(); err != nil {
		return ReportDriverLocationCommand{}, err
	}
	if driverID <= 0 {
		return ReportDriverLocationCommand{}, errs.NewValueIsInvalidError("driverID")
	}
	if !actor.IsAdmin() && (actor.Role() != kernel.RoleDriver || actor.DriverID() != driverID) {
		return ReportDriverLocationCommand{}, errs.NewUnauthorizedErrorWithCause(
			actor.Role().String(), "report location", fmt.Errorf("not driver %d", driverID))
	}
	if location == nil && locationText == "" {
		return ReportDriverLocationCommand{}, errs.NewValueIsRequiredError("location")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return ReportDriverLocationCommand{}, err
		}
	}

	return ReportDriverLocationCommand{
		driverID:     driverID,
		locationText: locationText,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ReportDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportDriverLocationCommandIsNotConstructed)
}

func (c ReportDriverLocationCommand) DriverID() int64 { return c.driverID }

func (c ReportDriverLocationCommand) LocationText() string { return c.locationText }

func (c ReportDriverLocationCommand) Location() *kernel.Location { return c.location }
