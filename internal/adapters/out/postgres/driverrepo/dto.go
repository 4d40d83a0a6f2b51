// Package driverrepo persists driver aggregates with GORM.
package driverrepo

import (
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
)

// DriverDTO is a row of the drivers table.
type DriverDTO struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	Name          string
	Email         string
	Phone         string
	VehicleType   string
	VehicleNumber string
	Rating        float64
	LocationText  string
	LocationLat   *float64
	LocationLng   *float64
	Available     bool
	ActiveParcel  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	p := d.Profile()
	dto := DriverDTO{
		ID:            d.ID(),
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		VehicleType:   p.VehicleType.String(),
		VehicleNumber: p.VehicleNumber,
		Rating:        p.Rating,
		LocationText:  d.LocationText(),
		Available:     d.IsAvailable(),
	}
	if loc := d.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.LocationLat = &lat
		dto.LocationLng = &lng
	}
	if tn := d.ActiveParcel(); tn != nil {
		s := tn.String()
		dto.ActiveParcel = &s
	}
	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	vehicleType, err := driver.ParseVehicleType(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.LocationLat != nil && dto.LocationLng != nil {
		loc, locErr := kernel.NewLocation(*dto.LocationLat, *dto.LocationLng)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	var activeParcel *kernel.TrackingNumber
	if dto.ActiveParcel != nil {
		tn, tnErr := kernel.ParseTrackingNumber(*dto.ActiveParcel)
		if tnErr != nil {
			return nil, tnErr
		}
		activeParcel = &tn
	}

	return driver.RestoreDriver(
		dto.ID,
		driver.Profile{
			Name:          dto.Name,
			Email:         dto.Email,
			Phone:         dto.Phone,
			VehicleType:   vehicleType,
			VehicleNumber: dto.VehicleNumber,
			Rating:        dto.Rating,
		},
		dto.LocationText,
		location,
		dto.Available,
		activeParcel,
	)
}
