package services_test

import (
	"math"
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingEngine_ComputePrice(t *testing.T) {
	engine := services.NewPricingEngine()

	tests := []struct {
		name     string
		distance float64
		weight   float64
		breadth  float64
		want     string
	}{
		{"narrow parcel", 10, 5, 0.4, "175.00"},
		{"wide parcel", 10, 5, 1.2, "262.50"},
		{"breadth at 0.5 boundary", 10, 5, 0.5, "175.00"},
		{"breadth at 1.0 boundary", 10, 5, 1.0, "210.00"},
		{"breadth at 1.5 boundary", 10, 5, 1.5, "262.50"},
		{"oversized", 10, 5, 1.51, "315.00"},
		{"zero distance", 0, 1, 0.1, "55.00"},
		{"rounds half away from zero", 0.0005, 1, 0.1, "55.01"},
		{"fractional inputs", 3.333, 2.2, 0.7, "113.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ComputePrice(tt.distance, tt.weight, tt.breadth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestPricingEngine_ComputePrice_InvalidInput(t *testing.T) {
	engine := services.NewPricingEngine()

	tests := []struct {
		name                      string
		distance, weight, breadth float64
		param                     string
	}{
		{"negative distance", -1, 5, 0.4, "distanceKm"},
		{"NaN distance", math.NaN(), 5, 0.4, "distanceKm"},
		{"zero weight", 10, 0, 0.4, "weightKg"},
		{"infinite weight", 10, math.Inf(1), 0.4, "weightKg"},
		{"zero breadth", 10, 5, 0, "breadthM"},
		{"negative breadth", 10, 5, -0.2, "breadthM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ComputePrice(tt.distance, tt.weight, tt.breadth)

			require.ErrorIs(t, err, errs.ErrInvalidInput)
			var inputErr *errs.InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.param, inputErr.ParamName)
		})
	}
}

func TestPricingEngine_Quote(t *testing.T) {
	engine := services.NewPricingEngine()
	a, err := kernel.NewLocation(0, 0)
	require.NoError(t, err)
	b, err := kernel.NewLocation(0, 1)
	require.NoError(t, err)

	q, err := engine.Quote(a, b, 5, 0.4)
	require.NoError(t, err)

	// 111.19492664 km: price uses the raw distance, the displayed distance is rounded
	assert.Equal(t, "111.19", q.DistanceKm.StringFixed(2))
	assert.Equal(t, "1186.95", q.Price.StringFixed(2))

	q, err = engine.Quote(a, a, 1, 0.1)
	require.NoError(t, err)
	assert.True(t, q.DistanceKm.IsZero())
	assert.Equal(t, "55.00", q.Price.StringFixed(2))

	_, err = engine.Quote(a, kernel.Location{}, 1, 0.1)
	assert.Error(t, err)
}
