package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type FindAvailabilityDriftQueryHandler struct {
	db *gorm.DB
}

func NewFindAvailabilityDriftQueryHandler(db *gorm.DB) FindAvailabilityDriftQueryHandler {
	return FindAvailabilityDriftQueryHandler{db: db}
}

// Handle reports a driver when its active parcel is not the in-flight parcel
// assigned to it. The drivers table ties available to active_parcel IS NULL,
// so this also covers an available driver holding an in-flight parcel.
func (h FindAvailabilityDriftQueryHandler) Handle(
	ctx context.Context,
	query FindAvailabilityDriftQuery,
) ([]AvailabilityDriftResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT d.id, d.available, d.active_parcel, p.tracking_number
		FROM drivers d
		LEFT JOIN parcels p
			ON p.driver_id = d.id
			AND p.status IN ('assigned', 'picked_up', 'in_transit', 'out_for_delivery')
		WHERE d.active_parcel IS DISTINCT FROM p.tracking_number
		ORDER BY d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drift := make([]AvailabilityDriftResponse, 0)
	for rows.Next() {
		var (
			r                      AvailabilityDriftResponse
			activeParcel, inFlight sql.NullString
		)
		if err = rows.Scan(&r.DriverID, &r.Available, &activeParcel, &inFlight); err != nil {
			return nil, err
		}
		if activeParcel.Valid {
			v := activeParcel.String
			r.ActiveParcel = &v
		}
		if inFlight.Valid {
			v := inFlight.String
			r.InFlightParcel = &v
		}
		drift = append(drift, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drift, nil
}
