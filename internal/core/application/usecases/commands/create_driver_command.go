package commands

import (
	"errors"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a driver on the roster. New drivers start available.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	profile      driver.Profile
	locationText string
	location     *kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand requires an admin actor. location may be nil.
func NewCreateDriverCommand(
	actor kernel.Actor,
	profile driver.Profile,
	locationText string,
	location *kernel.Location,
) (CreateDriverCommand, error) {
	var locErr error
	if location != nil {
		locErr = location.Validate()
	}
	if err := errors.Join(requireAdmin(actor, "create drivers"), locErr); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		profile:      profile,
		locationText: locationText,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) Profile() driver.Profile { return c.profile }

func (c CreateDriverCommand) LocationText() string { return c.locationText }

func (c CreateDriverCommand) Location() *kernel.Location { return c.location }
