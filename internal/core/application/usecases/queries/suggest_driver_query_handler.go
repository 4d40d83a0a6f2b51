package queries

import (
	"context"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// SuggestDriverQueryHandler ranks the available roster with the assignment
// coordinator. It reads outside any transaction, so the suggestion can be
// stale by the time it is assigned; AssignDriverCommandHandler rechecks.
//
// Example:
//
//	handler := NewSuggestDriverQueryHandler(parcels, drivers, services.NewAssignmentCoordinator())
//	query, _ := NewSuggestDriverQuery(tn, admin)
//	s, err := handler.Handle(ctx, query)
//	if errors.Is(err, services.ErrNoDriverAvailable) {
//	    // nobody to assign yet
//	}
type SuggestDriverQueryHandler struct {
	parcels     ports.ParcelRepository
	drivers     ports.DriverRepository
	coordinator services.AssignmentCoordinator
}

func NewSuggestDriverQueryHandler(
	parcels ports.ParcelRepository,
	drivers ports.DriverRepository,
	coordinator services.AssignmentCoordinator,
) SuggestDriverQueryHandler {
	return SuggestDriverQueryHandler{
		parcels:     parcels,
		drivers:     drivers,
		coordinator: coordinator,
	}
}

// Handle fails with the lifecycle error when the parcel cannot be assigned in
// its current status, and with services.ErrNoDriverAvailable when nobody is free.
func (h SuggestDriverQueryHandler) Handle(
	ctx context.Context,
	query SuggestDriverQuery,
) (SuggestDriverQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SuggestDriverQueryResponse{}, err
	}

	p, err := h.parcels.Get(ctx, query.TrackingNumber())
	if err != nil {
		return SuggestDriverQueryResponse{}, err
	}
	if _, err = parcel.Resolve(p.Status(), parcel.EventAssign, query.Actor().Role()); err != nil {
		return SuggestDriverQueryResponse{}, err
	}

	available, err := h.drivers.GetAllAvailable(ctx)
	if err != nil {
		return SuggestDriverQueryResponse{}, err
	}

	best, err := h.coordinator.SuggestDriver(p, available)
	if err != nil {
		return SuggestDriverQueryResponse{}, err
	}

	out := SuggestDriverQueryResponse{Driver: driverResponse(best)}
	if km, located := best.DistanceTo(p.Pickup().Location()); located {
		out.DistanceKm = &km
	}
	return out, nil
}

func driverResponse(d *driver.Driver) DriverResponse {
	profile := d.Profile()
	out := DriverResponse{
		ID:            d.ID(),
		Name:          profile.Name,
		Email:         profile.Email,
		Phone:         profile.Phone,
		VehicleType:   string(profile.VehicleType),
		VehicleNumber: profile.VehicleNumber,
		Rating:        profile.Rating,
		LocationText:  d.LocationText(),
		Available:     d.IsAvailable(),
	}
	if loc := d.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		out.Lat, out.Lng = &lat, &lng
	}
	if tn := d.ActiveParcel(); tn != nil {
		s := tn.String()
		out.ActiveParcel = &s
	}
	return out
}
