package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand is a client's delivery request. Price, distance and the
// tracking number are produced by the handler.
//
// Example:
//
//	pickup, _ := parcel.NewAddress("MG Road, Bengaluru", pickupLoc)
//	drop, _ := parcel.NewAddress("Anna Salai, Chennai", dropLoc)
//	m, _ := parcel.NewMeasurements(2, nil, nil, nil)
//	cmd, err := NewCreateParcelCommand(client, pickup, drop, m, "books", "")
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	actor               kernel.Actor
	pickup              parcel.Address
	drop                parcel.Address
	measurements        parcel.Measurements
	description         string
	specialInstructions string

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(
	actor kernel.Actor,
	pickup, drop parcel.Address,
	measurements parcel.Measurements,
	description, specialInstructions string,
) (CreateParcelCommand, error) {
	command := CreateParcelCommand{
		description:         description,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActor(actor),
		command.setAddresses(pickup, drop),
		command.setMeasurements(measurements),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return command, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) Actor() kernel.Actor { return c.actor }

func (c CreateParcelCommand) Pickup() parcel.Address { return c.pickup }

func (c CreateParcelCommand) Drop() parcel.Address { return c.drop }

func (c CreateParcelCommand) Measurements() parcel.Measurements { return c.measurements }

func (c CreateParcelCommand) Description() string { return c.description }

func (c CreateParcelCommand) SpecialInstructions() string { return c.specialInstructions }

func (c *CreateParcelCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleClient {
		return errs.NewUnauthorizedError(actor.Role().String(), "create parcels")
	}

	c.actor = actor
	return nil
}

func (c *CreateParcelCommand) setAddresses(pickup, drop parcel.Address) error {
	if err := errors.Join(pickup.Validate(), drop.Validate()); err != nil {
		return err
	}

	c.pickup = pickup
	c.drop = drop
	return nil
}

func (c *CreateParcelCommand) setMeasurements(m parcel.Measurements) error {
	if m.WeightKg() <= 0 {
		return errs.NewValueIsRequiredError("measurements")
	}

	c.measurements = m
	return nil
}
