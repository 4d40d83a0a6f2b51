package services

import (
	"math"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	basePrice  = decimal.NewFromInt(50)
	distRate   = decimal.NewFromInt(10)
	weightRate = decimal.NewFromInt(5)
)

// Quote is a priced route. DistanceKm is rounded for display, Price is computed from the raw distance.
type Quote struct {
	DistanceKm decimal.Decimal
	Price      decimal.Decimal
}

// PricingEngine computes delivery prices:
//
//	price = round2((50 + distanceKm*10 + weightKg*5) * multiplier(breadthM))
//
// where the multiplier is 1.0 up to 0.5 m, 1.2 up to 1.0 m, 1.5 up to 1.5 m and 1.8 above.
// Rounding is half away from zero.
type PricingEngine struct{}

func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// ComputePrice fails with an InvalidInputError unless distanceKm >= 0, weightKg > 0 and
// breadthM > 0, all finite. Inputs are never clamped.
func (PricingEngine) ComputePrice(distanceKm, weightKg, breadthM float64) (decimal.Decimal, error) {
	switch {
	case !isFinite(distanceKm) || distanceKm < 0:
		return decimal.Zero, errs.NewInvalidInputError("distanceKm", distanceKm)
	case !isFinite(weightKg) || weightKg <= 0:
		return decimal.Zero, errs.NewInvalidInputError("weightKg", weightKg)
	case !isFinite(breadthM) || breadthM <= 0:
		return decimal.Zero, errs.NewInvalidInputError("breadthM", breadthM)
	}

	subtotal := basePrice.
		Add(decimal.NewFromFloat(distanceKm).Mul(distRate)).
		Add(decimal.NewFromFloat(weightKg).Mul(weightRate))

	return subtotal.Mul(breadthMultiplier(breadthM)).Round(2), nil
}

// Quote prices the great-circle route between pickup and drop.
func (e PricingEngine) Quote(pickup, drop kernel.Location, weightKg, breadthM float64) (Quote, error) {
	distance, err := pickup.DistanceTo(drop)
	if err != nil {
		return Quote{}, err
	}

	price, err := e.ComputePrice(distance, weightKg, breadthM)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		DistanceKm: decimal.NewFromFloat(distance).Round(2),
		Price:      price,
	}, nil
}

func breadthMultiplier(breadthM float64) decimal.Decimal {
	switch {
	case breadthM <= 0.5:
		return decimal.NewFromInt(1)
	case breadthM <= 1.0:
		return decimal.RequireFromString("1.2")
	case breadthM <= 1.5:
		return decimal.RequireFromString("1.5")
	default:
		return decimal.RequireFromString("1.8")
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
