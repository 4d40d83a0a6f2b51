package ports

import (
	"context"

	"logistics/internal/core/domain/model/parcel"
)

// EventPublisher receives domain events after their transaction has committed.
// Publish must not block on delivery and never fails the committed operation.
type EventPublisher interface {
	Publish(ctx context.Context, events []parcel.StatusChanged)
}
