package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
)

// AssignDriverCommandHandler persists an assignment made by the coordinator.
// The parcel row is locked before the driver row. The availability write is a
// compare-and-swap, so of two concurrent assignments of one driver the later
// committer fails with errs.ErrDriverUnavailable.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory, services.NewAssignmentCoordinator())
//	cmd, _ := NewAssignDriverCommand(tn, 7, admin)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrDriverUnavailable) {
//	    // pick another driver
//	}
type AssignDriverCommandHandler struct {
	uowFactory  AssignmentUoWFactory
	coordinator services.AssignmentCoordinator
}

func NewAssignDriverCommandHandler(
	uowFactory AssignmentUoWFactory,
	coordinator services.AssignmentCoordinator,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
	}
}

func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	driverRepo := uow.DriverRepository()

	parcelAggregate, err := parcelRepo.GetForUpdate(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	// Lifecycle errors win over driver lookup errors.
	if _, err = parcel.Resolve(parcelAggregate.Status(), parcel.EventAssign, cmd.Actor().Role()); err != nil {
		return err
	}

	driverAggregate, err := driverRepo.GetForUpdate(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	wasAvailable := driverAggregate.IsAvailable()
	if err = h.coordinator.Assign(parcelAggregate, driverAggregate, cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = driverRepo.SaveAvailability(ctx, driverAggregate, wasAvailable); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, parcelAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
