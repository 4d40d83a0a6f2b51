package http

import (
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/services"
)

type NewParcel struct {
	FromLocation        string   `json:"from_location" validate:"required,max=255"`
	ToLocation          string   `json:"to_location" validate:"required,max=255"`
	PickupLat           *float64 `json:"pickup_lat" validate:"required,latitude"`
	PickupLng           *float64 `json:"pickup_lng" validate:"required,longitude"`
	DropLat             *float64 `json:"drop_lat" validate:"required,latitude"`
	DropLng             *float64 `json:"drop_lng" validate:"required,longitude"`
	Weight              float64  `json:"weight" validate:"gt=0"`
	Height              *float64 `json:"height" validate:"omitempty,gt=0"`
	Width               *float64 `json:"width" validate:"omitempty,gt=0"`
	Breadth             *float64 `json:"breadth" validate:"omitempty,gt=0"`
	Description         string   `json:"description" validate:"max=2000"`
	SpecialInstructions string   `json:"special_instructions" validate:"max=2000"`
}

type RejectParcel struct {
	Notes string `json:"notes" validate:"max=500"`
}

type StatusUpdate struct {
	CurrentStatus string `json:"current_status" validate:"required"`
	Location      string `json:"location" validate:"max=255"`
	Notes         string `json:"notes" validate:"max=500"`
}

type NewAssignment struct {
	ParcelID string `json:"parcel_id" validate:"required"`
	DriverID int64  `json:"driver_id" validate:"gt=0"`
}

type DriverProfile struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Phone           string   `json:"phone" validate:"max=15"`
	VehicleType     string   `json:"vehicle_type" validate:"required"`
	VehicleNumber   string   `json:"vehicle_number" validate:"required,max=20"`
	Rating          float64  `json:"rating" validate:"gte=0,lte=5"`
	CurrentLocation string   `json:"current_location" validate:"max=255"`
	Lat             *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng             *float64 `json:"lng" validate:"omitempty,longitude"`
}

type LocationReport struct {
	CurrentLocation string   `json:"current_location" validate:"max=255"`
	Lat             *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng             *float64 `json:"lng" validate:"omitempty,longitude"`
}

type Parcel struct {
	TrackingNumber      string          `json:"tracking_number"`
	ClientID            string          `json:"client_id"`
	FromLocation        string          `json:"from_location"`
	ToLocation          string          `json:"to_location"`
	PickupLat           float64         `json:"pickup_lat"`
	PickupLng           float64         `json:"pickup_lng"`
	DropLat             float64         `json:"drop_lat"`
	DropLng             float64         `json:"drop_lng"`
	Weight              float64         `json:"weight"`
	Height              *float64        `json:"height"`
	Width               *float64        `json:"width"`
	Breadth             *float64        `json:"breadth"`
	Price               string          `json:"price"`
	DistanceKm          string          `json:"distance_km"`
	CurrentStatus       string          `json:"current_status"`
	DriverID            *int64          `json:"driver_id"`
	Description         string          `json:"description"`
	SpecialInstructions string          `json:"special_instructions"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	StatusHistory       []StatusHistory `json:"status_history,omitempty"`
}

type StatusHistory struct {
	Sequence      int       `json:"sequence"`
	Status        string    `json:"status"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes"`
	UpdatedBy     string    `json:"updated_by"`
	UpdatedByRole string    `json:"updated_by_role"`
	Timestamp     time.Time `json:"timestamp"`
}

type Driver struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	VehicleType     string   `json:"vehicle_type"`
	VehicleNumber   string   `json:"vehicle_number"`
	Rating          float64  `json:"rating"`
	CurrentLocation string   `json:"current_location"`
	Lat             *float64 `json:"lat"`
	Lng             *float64 `json:"lng"`
	IsAvailable     bool     `json:"is_available"`
	ActiveParcel    *string  `json:"active_parcel"`
}

type DriverSuggestion struct {
	Driver     Driver   `json:"driver"`
	DistanceKm *float64 `json:"distance_km"`
}

type DriverContact struct {
	TrackingNumber string `json:"parcel_tracking_number"`
	DriverID       int64  `json:"driver_id"`
	Name           string `json:"driver_name"`
	Phone          string `json:"driver_phone"`
	VehicleNumber  string `json:"vehicle_number"`
}

type ParcelStats struct {
	Total               int64            `json:"total_parcels"`
	ByStatus            map[string]int64 `json:"by_status"`
	UnreadNotifications int64            `json:"unread_notifications"`
}

type LiveDriver struct {
	ID             int64    `json:"driver_id"`
	Name           string   `json:"name"`
	LocationText   string   `json:"location_text"`
	Lat            *float64 `json:"latitude"`
	Lng            *float64 `json:"longitude"`
	IsAvailable    bool     `json:"is_available"`
	AssignedParcel *string  `json:"assigned_parcel"`
	ParcelStatus   *string  `json:"parcel_status"`
}

type Quote struct {
	DistanceKm string `json:"distance_km"`
	Price      string `json:"price"`
}

type Notification struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	RelatedParcel *string   `json:"related_parcel"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

type MarkedRead struct {
	Marked int64 `json:"marked"`
}

func toParcel(p queries.ParcelResponse) Parcel {
	out := Parcel{
		TrackingNumber:      p.TrackingNumber.String(),
		ClientID:            p.ClientID.String(),
		FromLocation:        p.Pickup.Text,
		ToLocation:          p.Drop.Text,
		PickupLat:           p.Pickup.Lat,
		PickupLng:           p.Pickup.Lng,
		DropLat:             p.Drop.Lat,
		DropLng:             p.Drop.Lng,
		Weight:              p.WeightKg,
		Height:              p.HeightM,
		Width:               p.WidthM,
		Breadth:             p.BreadthM,
		Price:               p.Price.StringFixed(2),
		DistanceKm:          p.DistanceKm.StringFixed(2),
		CurrentStatus:       p.Status.String(),
		DriverID:            p.DriverID,
		Description:         p.Description,
		SpecialInstructions: p.SpecialInstructions,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for _, h := range p.History {
		out.StatusHistory = append(out.StatusHistory, StatusHistory{
			Sequence:      h.Sequence,
			Status:        h.Status.String(),
			Location:      h.Location,
			Notes:         h.Notes,
			UpdatedBy:     h.ActorID.String(),
			UpdatedByRole: h.ActorRole.String(),
			Timestamp:     h.At,
		})
	}
	return out
}

func toParcels(ps []queries.ParcelResponse) []Parcel {
	out := make([]Parcel, 0, len(ps))
	for _, p := range ps {
		out = append(out, toParcel(p))
	}
	return out
}

func toDriver(d queries.DriverResponse) Driver {
	return Driver{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Phone:           d.Phone,
		VehicleType:     d.VehicleType,
		VehicleNumber:   d.VehicleNumber,
		Rating:          d.Rating,
		CurrentLocation: d.LocationText,
		Lat:             d.Lat,
		Lng:             d.Lng,
		IsAvailable:     d.Available,
		ActiveParcel:    d.ActiveParcel,
	}
}

// newDriverResponse renders a freshly created driver from what was submitted.
func newDriverResponse(id int64, profile driver.Profile, req DriverProfile) Driver {
	return Driver{
		ID:              id,
		Name:            profile.Name,
		Email:           profile.Email,
		Phone:           profile.Phone,
		VehicleType:     profile.VehicleType.String(),
		VehicleNumber:   profile.VehicleNumber,
		Rating:          profile.Rating,
		CurrentLocation: req.CurrentLocation,
		Lat:             req.Lat,
		Lng:             req.Lng,
		IsAvailable:     true,
	}
}

func toQuote(q services.Quote) Quote {
	return Quote{
		DistanceKm: q.DistanceKm.StringFixed(2),
		Price:      q.Price.StringFixed(2),
	}
}

func toNotification(n queries.NotificationResponse) Notification {
	return Notification{
		ID:            n.ID.String(),
		Type:          n.Kind,
		Title:         n.Title,
		Message:       n.Message,
		RelatedParcel: n.ParcelRef,
		IsRead:        n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

func toDriverContact(c queries.DriverContactResponse) DriverContact {
	return DriverContact{
		TrackingNumber: c.TrackingNumber.String(),
		DriverID:       c.DriverID,
		Name:           c.Name,
		Phone:          c.Phone,
		VehicleNumber:  c.VehicleNumber,
	}
}

func toParcelStats(s queries.ParcelStatsResponse) ParcelStats {
	byStatus := make(map[string]int64, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[status.String()] = n
	}
	return ParcelStats{
		Total:               s.Total,
		ByStatus:            byStatus,
		UnreadNotifications: s.UnreadNotifications,
	}
}

func toLiveDriver(d queries.LiveDriverResponse) LiveDriver {
	out := LiveDriver{
		ID:             d.ID,
		Name:           d.Name,
		LocationText:   d.LocationText,
		Lat:            d.Lat,
		Lng:            d.Lng,
		IsAvailable:    d.Available,
		AssignedParcel: d.ActiveParcel,
	}
	if d.ParcelStatus != nil {
		status := d.ParcelStatus.String()
		out.ParcelStatus = &status
	}
	return out
}
