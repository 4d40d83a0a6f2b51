package commands

import (
	"context"

	"logistics/internal/core/domain/model/driver"
)

// CreateDriverCommandHandler stores a new driver and returns the id assigned by the store.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{uowFactory: uowFactory}
}

func (h *CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	aggregate, err := driver.NewDriver(cmd.Profile())
	if err != nil {
		return 0, err
	}
	if err = aggregate.ReportLocation(cmd.LocationText(), cmd.Location()); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return aggregate.ID(), nil
}
