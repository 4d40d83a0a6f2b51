package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetDriverContactQueryIsNotConstructed = errors.New(
	"GetDriverContactQuery must be created via NewGetDriverContactQuery constructor",
)

// GetDriverContactQuery reads how to reach the driver of a parcel. Like
// GetParcelQuery, parcels the actor may not read are reported as not found.
type GetDriverContactQuery struct {
	trackingNumber kernel.TrackingNumber
	actor          kernel.Actor
	guard          guard.ConstructorGuard
}

func NewGetDriverContactQuery(tn kernel.TrackingNumber, actor kernel.Actor) (GetDriverContactQuery, error) {
	if err := errors.Join(tn.Validate(), actor.Validate()); err != nil {
		return GetDriverContactQuery{}, err
	}
	return GetDriverContactQuery{
		trackingNumber: tn,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetDriverContactQuery) TrackingNumber() kernel.TrackingNumber { return q.trackingNumber }

func (q GetDriverContactQuery) Actor() kernel.Actor { return q.actor }

func (q GetDriverContactQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverContactQueryIsNotConstructed)
}
