package queries

import (
	"context"

	"logistics/internal/core/domain/services"
)

type QuotePriceQueryHandler struct {
	pricing services.PricingEngine
}

func NewQuotePriceQueryHandler(pricing services.PricingEngine) QuotePriceQueryHandler {
	return QuotePriceQueryHandler{pricing: pricing}
}

// Handle returns the price CreateParcelCommandHandler would charge for the route.
func (h QuotePriceQueryHandler) Handle(_ context.Context, query QuotePriceQuery) (services.Quote, error) {
	if err := query.Validate(); err != nil {
		return services.Quote{}, err
	}
	return h.pricing.Quote(
		query.pickup,
		query.drop,
		query.measurements.WeightKg(),
		query.measurements.PricingBreadthM(),
	)
}
