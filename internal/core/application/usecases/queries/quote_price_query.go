package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrQuotePriceQueryIsNotConstructed = errors.New(
	"QuotePriceQuery must be created via NewQuotePriceQuery constructor",
)

// QuotePriceQuery prices a route without creating a parcel.
type QuotePriceQuery struct {
	pickup       kernel.Location
	drop         kernel.Location
	measurements parcel.Measurements
	guard        guard.ConstructorGuard
}

func NewQuotePriceQuery(pickup, drop kernel.Location, measurements parcel.Measurements) (QuotePriceQuery, error) {
	var measurementsErr error
	if measurements.WeightKg() <= 0 {
		measurementsErr = errs.NewValueIsRequiredError("measurements")
	}
	if err := errors.Join(pickup.Validate(), drop.Validate(), measurementsErr); err != nil {
		return QuotePriceQuery{}, err
	}
	return QuotePriceQuery{
		pickup:       pickup,
		drop:         drop,
		measurements: measurements,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q QuotePriceQuery) Validate() error {
	return q.guard.Validate(ErrQuotePriceQueryIsNotConstructed)
}
