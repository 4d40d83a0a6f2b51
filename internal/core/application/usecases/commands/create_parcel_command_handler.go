package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// maxTrackingNumberAttempts bounds re-issuing after a tracking number collision.
const maxTrackingNumberAttempts = 3

// CreateParcelCommandHandler prices a delivery request and stores it as a requested parcel.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, services.NewPricingEngine())
//	tn, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("parcel submission failed: %w", err)
//	}
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	pricing    services.PricingEngine
	issue      func() kernel.TrackingNumber
}

func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory, pricing services.PricingEngine) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		issue:      kernel.NewTrackingNumber,
	}
}

// Handle returns the tracking number of the stored parcel. A colliding tracking
// number is re-issued in a fresh transaction.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (kernel.TrackingNumber, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.TrackingNumber{}, err
	}

	quote, err := h.pricing.Quote(
		cmd.Pickup().Location(),
		cmd.Drop().Location(),
		cmd.Measurements().WeightKg(),
		cmd.Measurements().PricingBreadthM(),
	)
	if err != nil {
		return kernel.TrackingNumber{}, err
	}

	for attempt := 1; ; attempt++ {
		tn := h.issue()
		err = h.create(ctx, cmd, tn, quote)
		if err == nil {
			return tn, nil
		}
		if attempt == maxTrackingNumberAttempts || !isTrackingNumberConflict(err) {
			return kernel.TrackingNumber{}, err
		}
	}
}

func (h *CreateParcelCommandHandler) create(
	ctx context.Context,
	cmd CreateParcelCommand,
	tn kernel.TrackingNumber,
	quote services.Quote,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := parcel.NewParcel(
		tn,
		cmd.Actor().UserID(),
		cmd.Pickup(),
		cmd.Drop(),
		cmd.Measurements(),
		quote.Price,
		quote.DistanceKm,
		cmd.Description(),
		cmd.SpecialInstructions(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func isTrackingNumberConflict(err error) bool {
	var conflict *errs.ObjectAlreadyExistsError
	return errors.As(err, &conflict) && conflict.ParamName == "trackingNumber"
}
