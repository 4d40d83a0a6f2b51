package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrUnassignDriverCommandIsNotConstructed = errors.New(
	"UnassignDriverCommand must be created via NewUnassignDriverCommand constructor",
)

// UnassignDriverCommand revokes the assignment of an assigned parcel.
type UnassignDriverCommand struct { //nolint:recvcheck //using for validation
	trackingNumber kernel.TrackingNumber
	actor          kernel.Actor
	reason         string

	guard guard.ConstructorGuard
}

func NewUnassignDriverCommand(tn kernel.TrackingNumber, actor kernel.Actor, reason string) (UnassignDriverCommand, error) {
	if err := errors.Join(tn.Validate(), actor.Validate()); err != nil {
		return UnassignDriverCommand{}, err
	}

	return UnassignDriverCommand{
		trackingNumber: tn,
		actor:          actor,
		reason:         strings.TrimSpace(reason),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c UnassignDriverCommand) Validate() error {
	return c.guard.Validate(ErrUnassignDriverCommandIsNotConstructed)
}

func (c UnassignDriverCommand) TrackingNumber() kernel.TrackingNumber { return c.trackingNumber }

func (c UnassignDriverCommand) Actor() kernel.Actor { return c.actor }

func (c UnassignDriverCommand) Reason() string { return c.reason }
