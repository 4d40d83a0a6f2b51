package queries

import (
	"database/sql"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const parcelColumns = `
	p.tracking_number,
	p.client_id,
	p.pickup_address, p.pickup_lat, p.pickup_lng,
	p.drop_address, p.drop_lat, p.drop_lng,
	p.weight_kg, p.height_m, p.width_m, p.breadth_m,
	p.price, p.distance_km,
	p.status, p.driver_id,
	p.description, p.special_instructions,
	p.created_at, p.updated_at`

const driverColumns = `
	d.id, d.name, d.email, d.phone,
	d.vehicle_type, d.vehicle_number, d.rating,
	d.location_text, d.location_lat, d.location_lng,
	d.available, d.active_parcel`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParcel(row rowScanner) (ParcelResponse, error) {
	var (
		out        ParcelResponse
		tn, status string
		clientID   uuid.UUID
		driverID   sql.NullInt64
		price      decimal.Decimal
		distance   decimal.Decimal
	)

	err := row.Scan(
		&tn,
		&clientID,
		&out.Pickup.Text, &out.Pickup.Lat, &out.Pickup.Lng,
		&out.Drop.Text, &out.Drop.Lat, &out.Drop.Lng,
		&out.WeightKg, &out.HeightM, &out.WidthM, &out.BreadthM,
		&price, &distance,
		&status, &driverID,
		&out.Description, &out.SpecialInstructions,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return ParcelResponse{}, err
	}

	if out.TrackingNumber, err = kernel.ParseTrackingNumber(tn); err != nil {
		return ParcelResponse{}, err
	}
	if out.ClientID, err = toUUID(clientID); err != nil {
		return ParcelResponse{}, err
	}
	if out.Status, err = parcel.ParseStatus(status); err != nil {
		return ParcelResponse{}, err
	}
	if driverID.Valid {
		id := driverID.Int64
		out.DriverID = &id
	}
	out.Price = price
	out.DistanceKm = distance
	return out, nil
}

func scanDriver(row rowScanner) (DriverResponse, error) {
	var (
		out          DriverResponse
		activeParcel sql.NullString
	)

	err := row.Scan(
		&out.ID, &out.Name, &out.Email, &out.Phone,
		&out.VehicleType, &out.VehicleNumber, &out.Rating,
		&out.LocationText, &out.Lat, &out.Lng,
		&out.Available, &activeParcel,
	)
	if err != nil {
		return DriverResponse{}, err
	}

	if activeParcel.Valid {
		v := activeParcel.String
		out.ActiveParcel = &v
	}
	return out, nil
}

// visibilityClause restricts parcels (aliased p) to those the actor may read.
func visibilityClause(actor kernel.Actor) (string, []any, error) {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return "TRUE", nil, nil
	case kernel.RoleClient:
		return "p.client_id = ?", []any{actor.UserID().Value()}, nil
	case kernel.RoleDriver:
		return "p.driver_id = ?", []any{actor.DriverID()}, nil
	default:
		return "", nil, fmt.Errorf("no parcel visibility for role %q", actor.Role())
	}
}

// likePattern escapes s for use inside an ILIKE pattern.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func toUUID(u uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromString(u.String())
}
