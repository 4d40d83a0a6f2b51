package ports

import (
	"context"

	"logistics/internal/core/domain/model/driver"
)

// DriverRepository persists driver aggregates.
type DriverRepository interface {
	// Add inserts the driver and assigns its id. Duplicate email or vehicle number
	// fails with errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update writes profile and location. Availability is left untouched.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// SaveAvailability writes availability and the active parcel only if the stored
	// availability still equals wasAvailable. A lost race fails with errs.ErrDriverUnavailable.
	SaveAvailability(ctx context.Context, aggregate *driver.Driver, wasAvailable bool) error

	Get(ctx context.Context, id int64) (*driver.Driver, error)

	// GetForUpdate loads the driver and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*driver.Driver, error)

	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)

	Delete(ctx context.Context, id int64) error
}
