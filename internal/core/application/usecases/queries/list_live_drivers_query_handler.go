package queries

import (
	"context"
	"database/sql"

	"logistics/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

type ListLiveDriversQueryHandler struct {
	db *gorm.DB
}

func NewListLiveDriversQueryHandler(db *gorm.DB) ListLiveDriversQueryHandler {
	return ListLiveDriversQueryHandler{db: db}
}

func (h ListLiveDriversQueryHandler) Handle(ctx context.Context, query ListLiveDriversQuery) ([]LiveDriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT d.id, d.name, d.location_text, d.location_lat, d.location_lng,
		       d.available, d.active_parcel, p.status
		FROM drivers d
		LEFT JOIN parcels p ON p.tracking_number = d.active_parcel
		ORDER BY d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]LiveDriverResponse, 0)
	for rows.Next() {
		var (
			d            LiveDriverResponse
			activeParcel sql.NullString
			status       sql.NullString
		)
		err = rows.Scan(&d.ID, &d.Name, &d.LocationText, &d.Lat, &d.Lng, &d.Available, &activeParcel, &status)
		if err != nil {
			return nil, err
		}
		if activeParcel.Valid {
			tn := activeParcel.String
			d.ActiveParcel = &tn
		}
		if status.Valid {
			s, parseErr := parcel.ParseStatus(status.String)
			if parseErr != nil {
				return nil, parseErr
			}
			d.ParcelStatus = &s
		}
		drivers = append(drivers, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
