// Package queries contains the read side: parcels, drivers, inboxes and price
// quotes. Handlers read straight from the database with SQL and return flat
// read models, except where a domain service has to rank or price.
package queries

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
)

type AddressResponse struct {
	Text string
	Lat  float64
	Lng  float64
}

// ParcelResponse is a parcel as shown to its readers. History is only filled
// by GetParcelQueryHandler, oldest entry first.
type ParcelResponse struct {
	TrackingNumber      kernel.TrackingNumber
	ClientID            kernel.UUID
	Pickup              AddressResponse
	Drop                AddressResponse
	WeightKg            float64
	HeightM             *float64
	WidthM              *float64
	BreadthM            *float64
	Price               decimal.Decimal
	DistanceKm          decimal.Decimal
	Status              parcel.Status
	DriverID            *int64
	Description         string
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	History             []HistoryResponse
}

type HistoryResponse struct {
	Sequence  int
	Status    parcel.Status
	Location  string
	Notes     string
	ActorID   kernel.UUID
	ActorRole kernel.Role
	At        time.Time
}

type DriverResponse struct {
	ID            int64
	Name          string
	Email         string
	Phone         string
	VehicleType   string
	VehicleNumber string
	Rating        float64
	LocationText  string
	Lat           *float64
	Lng           *float64
	Available     bool
	ActiveParcel  *string
}

type NotificationResponse struct {
	ID        kernel.UUID
	Kind      string
	Title     string
	Message   string
	ParcelRef *string
	Read      bool
	CreatedAt time.Time
}

// ParcelStatsResponse holds one count per status; statuses without parcels are zero.
type ParcelStatsResponse struct {
	Total               int64
	ByStatus            map[parcel.Status]int64
	UnreadNotifications int64
}

type LiveDriverResponse struct {
	ID           int64
	Name         string
	LocationText string
	Lat          *float64
	Lng          *float64
	Available    bool
	ActiveParcel *string
	ParcelStatus *parcel.Status
}

type DriverContactResponse struct {
	TrackingNumber kernel.TrackingNumber
	DriverID       int64
	Name           string
	Phone          string
	VehicleNumber  string
}
