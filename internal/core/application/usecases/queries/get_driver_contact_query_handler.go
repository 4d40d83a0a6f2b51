package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDriverContactQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverContactQueryHandler(db *gorm.DB) GetDriverContactQueryHandler {
	return GetDriverContactQueryHandler{db: db}
}

// Handle fails with errs.ErrObjectNotFound both for an unknown parcel and for a
// parcel that never had a driver. Delivered parcels still name their driver.
func (h GetDriverContactQueryHandler) Handle(
	ctx context.Context,
	query GetDriverContactQuery,
) (DriverContactResponse, error) {
	if err := query.Validate(); err != nil {
		return DriverContactResponse{}, err
	}

	visible, args, err := visibilityClause(query.Actor())
	if err != nil {
		return DriverContactResponse{}, err
	}
	tn := query.TrackingNumber().String()

	var (
		driverID                   sql.NullInt64
		name, phone, vehicleNumber sql.NullString
	)
	err = h.db.WithContext(ctx).Raw(`
		SELECT d.id, d.name, d.phone, d.vehicle_number
		FROM parcels p
		LEFT JOIN drivers d ON d.id = p.driver_id
		WHERE p.tracking_number = ? AND `+visible,
		append([]any{tn}, args...)...,
	).Row().Scan(&driverID, &name, &phone, &vehicleNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return DriverContactResponse{}, errs.NewObjectNotFoundError("trackingNumber", tn)
	}
	if err != nil {
		return DriverContactResponse{}, err
	}
	if !driverID.Valid {
		return DriverContactResponse{}, errs.NewObjectNotFoundError("driver", tn)
	}

	return DriverContactResponse{
		TrackingNumber: query.TrackingNumber(),
		DriverID:       driverID.Int64,
		Name:           name.String,
		Phone:          phone.String,
		VehicleNumber:  vehicleNumber.String,
	}, nil
}
