package commands

import (
	"context"
	"time"
)

// AcceptParcelCommandHandler lets an admin accept a requested parcel.
type AcceptParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

func NewAcceptParcelCommandHandler(uowFactory ParcelUoWFactory) AcceptParcelCommandHandler {
	return AcceptParcelCommandHandler{uowFactory: uowFactory}
}

func (h *AcceptParcelCommandHandler) Handle(ctx context.Context, cmd AcceptParcelCommand) error {
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

	if err = aggregate.Accept(cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
