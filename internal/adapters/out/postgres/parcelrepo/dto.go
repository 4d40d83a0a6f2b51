// Package parcelrepo persists parcel aggregates and their status history with GORM.
package parcelrepo

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO is a row of the parcels table.
type ParcelDTO struct {
	TrackingNumber      string          `gorm:"primaryKey"`
	ClientID            uuid.UUID       `gorm:"type:uuid"`
	Pickup              AddressDTO      `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop                AddressDTO      `gorm:"embedded;embeddedPrefix:drop_"`
	WeightKg            float64
	HeightM             *float64
	WidthM              *float64
	BreadthM            *float64
	Price               decimal.Decimal `gorm:"type:numeric(12,2)"`
	DistanceKm          decimal.Decimal `gorm:"type:numeric(10,2)"`
	Status              string
	DriverID            *int64
	Description         string
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// AddressDTO is embedded twice, as pickup_* and drop_* columns.
type AddressDTO struct {
	Address string
	Lat     float64
	Lng     float64
}

// HistoryDTO is a row of the append-only parcel_status_history table.
type HistoryDTO struct {
	TrackingNumber string    `gorm:"primaryKey"`
	Sequence       int       `gorm:"primaryKey"`
	Status         string
	Location       string
	Notes          string
	ActorID        uuid.UUID `gorm:"type:uuid"`
	ActorRole      string
	CreatedAt      time.Time
}

func (HistoryDTO) TableName() string {
	return "parcel_status_history"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	m := p.Measurements()
	return ParcelDTO{
		TrackingNumber:      p.TrackingNumber().String(),
		ClientID:            p.ClientID().Value(),
		Pickup:              addressFromDomain(p.Pickup()),
		Drop:                addressFromDomain(p.Drop()),
		WeightKg:            m.WeightKg(),
		HeightM:             m.HeightM(),
		WidthM:              m.WidthM(),
		BreadthM:            m.BreadthM(),
		Price:               p.Price(),
		DistanceKm:          p.DistanceKm(),
		Status:              p.Status().String(),
		DriverID:            p.DriverID(),
		Description:         p.Description(),
		SpecialInstructions: p.SpecialInstructions(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func addressFromDomain(a parcel.Address) AddressDTO {
	return AddressDTO{
		Address: a.Text(),
		Lat:     a.Location().Lat(),
		Lng:     a.Location().Lng(),
	}
}

func historyFromDomain(tn kernel.TrackingNumber, entries []parcel.HistoryEntry) []HistoryDTO {
	dtos := make([]HistoryDTO, 0, len(entries))
	for _, h := range entries {
		dtos = append(dtos, HistoryDTO{
			TrackingNumber: tn.String(),
			Sequence:       h.Sequence(),
			Status:         h.Status().String(),
			Location:       h.Location(),
			Notes:          h.Notes(),
			ActorID:        h.ActorID().Value(),
			ActorRole:      h.ActorRole().String(),
			CreatedAt:      h.At(),
		})
	}
	return dtos
}

func toDomain(dto ParcelDTO, history []HistoryDTO) (*parcel.Parcel, error) {
	tn, err := kernel.ParseTrackingNumber(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromString(dto.ClientID.String())
	if err != nil {
		return nil, err
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, pickupErr := addressToDomain(dto.Pickup)
	drop, dropErr := addressToDomain(dto.Drop)
	measurements, measurementsErr := parcel.NewMeasurements(dto.WeightKg, dto.HeightM, dto.WidthM, dto.BreadthM)
	entries, historyErr := historyToDomain(history)
	if err = errors.Join(pickupErr, dropErr, measurementsErr, historyErr); err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(parcel.RestoreParams{
		TrackingNumber:      tn,
		ClientID:            clientID,
		Pickup:              pickup,
		Drop:                drop,
		Measurements:        measurements,
		Price:               dto.Price,
		DistanceKm:          dto.DistanceKm,
		Status:              status,
		DriverID:            dto.DriverID,
		Description:         dto.Description,
		SpecialInstructions: dto.SpecialInstructions,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
		History:             entries,
	})
}

func addressToDomain(dto AddressDTO) (parcel.Address, error) {
	loc, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return parcel.Address{}, err
	}
	return parcel.NewAddress(dto.Address, loc)
}

func historyToDomain(dtos []HistoryDTO) ([]parcel.HistoryEntry, error) {
	entries := make([]parcel.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := parcel.ParseStatus(dto.Status)
		if err != nil {
			return nil, err
		}
		actorID, err := kernel.UUIDFromString(dto.ActorID.String())
		if err != nil {
			return nil, err
		}
		role, err := kernel.ParseRole(dto.ActorRole)
		if err != nil {
			return nil, err
		}
		entries = append(entries, parcel.RestoreHistoryEntry(
			dto.Sequence, status, dto.Location, dto.Notes, actorID, role, dto.CreatedAt,
		))
	}
	return entries, nil
}
