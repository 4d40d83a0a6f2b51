package notifications

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/metrics"
)

// Dispatch-side of the dispatcher, narrowed for the publisher.
type dispatcher interface {
	Dispatch(ctx context.Context, n notification.Notification)
}

// EventPublisher turns committed status changes into notifications. It
// implements ports.EventPublisher.
type EventPublisher struct {
	dispatcher dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewEventPublisher(d dispatcher, logger *slog.Logger, m *metrics.Metrics) *EventPublisher {
	return &EventPublisher{
		dispatcher: d,
		logger:     logger.With("component", "event_publisher"),
		metrics:    m,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, events []parcel.StatusChanged) {
	for _, e := range events {
		p.metrics.IncTransition(e.From.String(), e.To.String())
		p.logger.InfoContext(ctx, "Parcel status changed",
			"tracking_number", e.TrackingNumber.String(),
			"from", e.From.String(),
			"to", e.To.String(),
			"actor", e.Actor.String(),
		)

		batch, err := notification.ForStatusChange(e)
		if err != nil {
			p.logger.ErrorContext(ctx, "Failed to build notifications",
				"tracking_number", e.TrackingNumber.String(), "error", err)
			continue
		}
		for _, n := range batch {
			p.dispatcher.Dispatch(ctx, n)
		}
	}
}
