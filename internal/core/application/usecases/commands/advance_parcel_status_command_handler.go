package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// AdvanceParcelStatusCommandHandler applies driver progress updates. The driver row
// is only locked for the delivering step, which releases the driver.
type AdvanceParcelStatusCommandHandler struct {
	uowFactory  AssignmentUoWFactory
	coordinator services.AssignmentCoordinator
}

func NewAdvanceParcelStatusCommandHandler(
	uowFactory AssignmentUoWFactory,
	coordinator services.AssignmentCoordinator,
) AdvanceParcelStatusCommandHandler {
	return AdvanceParcelStatusCommandHandler{
		uowFactory:  uowFactory,
		coordinator: coordinator,
	}
}

func (h *AdvanceParcelStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceParcelStatusCommand) error {
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

	var (
		driverRepo      ports.DriverRepository
		driverAggregate *driver.Driver
	)
	if releasesDriver(parcelAggregate, cmd.Target()) {
		driverRepo = uow.DriverRepository()
		driverAggregate, err = driverRepo.GetForUpdate(ctx, *parcelAggregate.DriverID())
		if err != nil {
			return err
		}
	}

	err = h.coordinator.Advance(
		parcelAggregate,
		driverAggregate,
		cmd.Actor(),
		cmd.Target(),
		cmd.Location(),
		cmd.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, parcelAggregate); err != nil {
		return err
	}

	if driverAggregate != nil {
		if err = driverRepo.SaveAvailability(ctx, driverAggregate, false); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func releasesDriver(p *parcel.Parcel, target parcel.Status) bool {
	next, ok := parcel.NextDriverTransition(p.Status())
	return ok && next.To == target && next.Effects.Has(parcel.EffectReleaseDriver) && p.DriverID() != nil
}
