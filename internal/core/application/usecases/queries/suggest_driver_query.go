package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrSuggestDriverQueryIsNotConstructed = errors.New(
	"SuggestDriverQuery must be created via NewSuggestDriverQuery constructor",
)

// SuggestDriverQuery asks for the available driver nearest to a parcel's pickup point.
type SuggestDriverQuery struct {
	trackingNumber kernel.TrackingNumber
	actor          kernel.Actor
	guard          guard.ConstructorGuard
}

func NewSuggestDriverQuery(tn kernel.TrackingNumber, actor kernel.Actor) (SuggestDriverQuery, error) {
	if err := errors.Join(tn.Validate(), actor.Validate()); err != nil {
		return SuggestDriverQuery{}, err
	}
	if !actor.IsAdmin() {
		return SuggestDriverQuery{}, errs.NewUnauthorizedError(actor.Role().String(), "suggest driver")
	}
	return SuggestDriverQuery{
		trackingNumber: tn,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q SuggestDriverQuery) TrackingNumber() kernel.TrackingNumber { return q.trackingNumber }

func (q SuggestDriverQuery) Actor() kernel.Actor { return q.actor }

func (q SuggestDriverQuery) Validate() error {
	return q.guard.Validate(ErrSuggestDriverQueryIsNotConstructed)
}

// SuggestDriverQueryResponse carries the suggested driver. DistanceKm is nil
// when the driver has not reported coordinates.
type SuggestDriverQueryResponse struct {
	Driver     DriverResponse
	DistanceKm *float64
}
