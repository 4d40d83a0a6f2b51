package queries

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrFindAvailabilityDriftQueryIsNotConstructed = errors.New(
	"FindAvailabilityDriftQuery must be created via NewFindAvailabilityDriftQuery constructor",
)

// FindAvailabilityDriftQuery finds drivers whose availability flag disagrees
// with the parcels they hold in flight. It is run by the audit job.
type FindAvailabilityDriftQuery struct {
	guard guard.ConstructorGuard
}

func NewFindAvailabilityDriftQuery() FindAvailabilityDriftQuery {
	return FindAvailabilityDriftQuery{guard: guard.NewConstructorGuard()}
}

func (q FindAvailabilityDriftQuery) Validate() error {
	return q.guard.Validate(ErrFindAvailabilityDriftQueryIsNotConstructed)
}

// AvailabilityDriftResponse describes one inconsistent driver. InFlightParcel
// is the parcel the parcels table says the driver holds, if any.
type AvailabilityDriftResponse struct {
	DriverID       int64
	Available      bool
	ActiveParcel   *string
	InFlightParcel *string
}
