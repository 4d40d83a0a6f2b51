package commands

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

func requireAdmin(actor kernel.Actor, action string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewUnauthorizedError(actor.Role().String(), action)
	}
	return nil
}
