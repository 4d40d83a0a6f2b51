package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// UnassignDriverCommandHandler returns an assigned parcel to accepted and puts its
// driver back on the roster in one transaction.
type UnassignDriverCommandHandler struct {
	uowFactory  AssignmentUoWFactory
	coordinator services.AssignmentCoordinator
}

func NewUnassignDriverCommandHandler(
	uowFactory AssignmentUoWFactory,
	coordinator services.AssignmentCoordinator,
) UnassignDriverCommandHandler {
	return UnassignDriverCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
	}
}

func (h *UnassignDriverCommandHandler) Handle(ctx context.Context, cmd UnassignDriverCommand) error {
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
	parcelAggregate, err := parcelRepo.GetForUpdate(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	driverID := parcelAggregate.DriverID()
	if driverID == nil {
		// Only assigned parcels carry a driver and may be unassigned, so Resolve
		// names the real problem: wrong status, terminal status or wrong role.
		if _, err = parcel.Resolve(parcelAggregate.Status(), parcel.EventUnassign, cmd.Actor().Role()); err != nil {
			return err
		}
		return errs.NewValueIsRequiredError("driverID")
	}

	driverRepo := uow.DriverRepository()
	driverAggregate, err := driverRepo.GetForUpdate(ctx, *driverID)
	if err != nil {
		return err
	}

	err = h.coordinator.Unassign(parcelAggregate, driverAggregate, cmd.Actor(), cmd.Reason(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, parcelAggregate); err != nil {
		return err
	}

	if err = driverRepo.SaveAvailability(ctx, driverAggregate, false); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
