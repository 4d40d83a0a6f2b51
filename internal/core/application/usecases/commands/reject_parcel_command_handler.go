package commands

import (
	"context"
	"time"
)

// RejectParcelCommandHandler lets an admin reject a requested parcel.
type RejectParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

func NewRejectParcelCommandHandler(uowFactory ParcelUoWFactory) RejectParcelCommandHandler {
	return RejectParcelCommandHandler{uowFactory: uowFactory}
}

func (h *RejectParcelCommandHandler) Handle(ctx context.Context, cmd RejectParcelCommand) error {
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
	aggregate, err := parcelRepo.GetForUpdate(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	if err = aggregate.Reject(cmd.Actor(), cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
