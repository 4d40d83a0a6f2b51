// Package commands contains the operations that change parcels, drivers and inboxes.
// Every handler follows the same shape: validate the command, open a unit of work,
// load and lock aggregates, apply domain behaviour, persist, commit.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each family of handlers needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// ParcelUoW covers transitions that touch only the parcel.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// AssignmentUoW covers transitions that also change driver availability.
	// Lock order is always parcel, then driver.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.ParcelRepository().GetForUpdate(ctx, tn)
	//   d, err := uow.DriverRepository().GetForUpdate(ctx, driverID)
	//   // ... coordinator works on p and d
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		ParcelRepoFactory
		DriverRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// DriverUoW covers roster administration.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// NotificationUoW covers inbox updates.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
