// Package ports defines the contracts between the logistics core and its adapters:
// repositories, the unit of work, notification sinks and event publishing.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
)

// ParcelRepository persists parcel aggregates together with their status history.
type ParcelRepository interface {
	// Add inserts a new parcel and its history. A duplicate tracking number
	// fails with errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update writes the current state and appends history entries not yet stored.
	// Stored history entries are never rewritten.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	Get(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error)

	// GetForUpdate loads the parcel and locks its row until the transaction ends.
	// Always lock the parcel before its driver.
	GetForUpdate(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error)
}
