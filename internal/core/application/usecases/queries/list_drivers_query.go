package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrListDriversQueryIsNotConstructed = errors.New(
	"ListDriversQuery must be created via NewListDriversQuery constructor",
)

// ListDriversQuery lists the roster for an admin, optionally only available drivers.
type ListDriversQuery struct {
	availableOnly bool
	guard         guard.ConstructorGuard
}

func NewListDriversQuery(actor kernel.Actor, availableOnly bool) (ListDriversQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListDriversQuery{}, err
	}
	if !actor.IsAdmin() {
		return ListDriversQuery{}, errs.NewUnauthorizedError(actor.Role().String(), "list drivers")
	}
	return ListDriversQuery{
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q ListDriversQuery) AvailableOnly() bool { return q.availableOnly }

func (q ListDriversQuery) Validate() error {
	return q.guard.Validate(ErrListDriversQueryIsNotConstructed)
}
