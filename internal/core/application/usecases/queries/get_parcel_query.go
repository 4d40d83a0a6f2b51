package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery reads one parcel with its full status history. Parcels the
// actor may not read are reported as not found.
type GetParcelQuery struct {
	trackingNumber kernel.TrackingNumber
	actor          kernel.Actor
	guard          guard.ConstructorGuard
}

func NewGetParcelQuery(tn kernel.TrackingNumber, actor kernel.Actor) (GetParcelQuery, error) {
	if err := errors.Join(tn.Validate(), actor.Validate()); err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{
		trackingNumber: tn,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetParcelQuery) TrackingNumber() kernel.TrackingNumber { return q.trackingNumber }

func (q GetParcelQuery) Actor() kernel.Actor { return q.actor }

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}
