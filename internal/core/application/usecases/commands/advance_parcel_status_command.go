package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/guard"
)

var ErrAdvanceParcelStatusCommandIsNotConstructed = errors.New(
	"AdvanceParcelStatusCommand must be created via NewAdvanceParcelStatusCommand constructor",
)

// AdvanceParcelStatusCommand is a driver's progress update. Target must be the
// next status of the driver path; location and notes are optional.
type AdvanceParcelStatusCommand struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber
	actor          kernel.Actor
	target         parcel.Status
	location       string
	notes          string

	guard guard.ConstructorGuard
}

func NewAdvanceParcelStatusCommand(
	tn kernel.TrackingNumber,
	actor kernel.Actor,
	target parcel.Status,
	location, notes string,
) (AdvanceParcelStatusCommand, error) {
	if err := errors.Join(tn.Validate(), actor.Validate(), target.Validate()); err != nil {
		return AdvanceParcelStatusCommand{}, err
	}

	return AdvanceParcelStatusCommand{
		trackingNumber: tn,
		actor:          actor,
		target:         target,
		location:       strings.TrimSpace(location),
		notes:          strings.TrimSpace(notes),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceParcelStatusCommandIsNotConstructed)
}

func (c AdvanceParcelStatusCommand) TrackingNumber() kernel.TrackingNumber { return c.trackingNumber }

func (c AdvanceParcelStatusCommand) Actor() kernel.Actor { return c.actor }

func (c AdvanceParcelStatusCommand) Target() parcel.Status { return c.target }

func (c AdvanceParcelStatusCommand) Location() string { return c.location }

func (c AdvanceParcelStatusCommand) Notes() string { return c.notes }
