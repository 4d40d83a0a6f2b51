package parcel

import (
	"time"

	"logistics/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// StatusChanged is recorded by the aggregate for every committed status change,
// including creation (From == Unknown). The unit of work publishes it after commit.
type StatusChanged struct {
	TrackingNumber kernel.TrackingNumber
	ClientID       kernel.UUID
	// DriverID is the driver assigned before or after the change, whichever is set.
	DriverID      *int64
	From          Status
	To            Status
	Event         Event
	Effects       Effects
	Notes         string
	PickupAddress string
	DropAddress   string
	Price         decimal.Decimal
	Actor         kernel.Role
	At            time.Time
}

// IsCreation reports whether the event records the parcel entering the lifecycle.
func (e StatusChanged) IsCreation() bool {
	return e.From == Unknown && e.To == Requested
}
