package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrListLiveDriversQueryIsNotConstructed = errors.New(
	"ListLiveDriversQuery must be created via NewListLiveDriversQuery constructor",
)

// ListLiveDriversQuery is the admin dashboard view of the fleet: where each
// driver was last seen and what they are carrying.
type ListLiveDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewListLiveDriversQuery(actor kernel.Actor) (ListLiveDriversQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListLiveDriversQuery{}, err
	}
	if !actor.IsAdmin() {
		return ListLiveDriversQuery{}, errs.NewUnauthorizedError(actor.Role().String(), "list live drivers")
	}
	return ListLiveDriversQuery{guard: guard.NewConstructorGuard()}, nil
}

func (q ListLiveDriversQuery) Validate() error {
	return q.guard.Validate(ErrListLiveDriversQueryIsNotConstructed)
}
