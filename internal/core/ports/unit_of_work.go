package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after Begin
// share its transaction. Domain events of tracked aggregates are published only
// after a successful Commit and discarded on Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	// Rollback discards the transaction. After a successful Commit it returns nil,
	// so it can be deferred.
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository

	DriverRepository() DriverRepository

	NotificationRepository() NotificationRepository
}
