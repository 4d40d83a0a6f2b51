package queries

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ListParcelsQuery lists the parcels the actor may read, newest first.
// Admins see every parcel, clients their own, drivers those assigned to them.
// A status narrows the list; search matches the tracking number or either
// address, case-insensitively.
type ListParcelsQuery struct {
	actor  kernel.Actor
	status *parcel.Status
	search string
	guard  guard.ConstructorGuard
}

func NewListParcelsQuery(actor kernel.Actor, status *parcel.Status, search string) (ListParcelsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListParcelsQuery{}, err
	}
	q := ListParcelsQuery{
		actor:  actor,
		search: strings.TrimSpace(search),
		guard:  guard.NewConstructorGuard(),
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListParcelsQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListParcelsQuery) Actor() kernel.Actor { return q.actor }

func (q ListParcelsQuery) Status() *parcel.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}

func (q ListParcelsQuery) Search() string { return q.search }

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}
