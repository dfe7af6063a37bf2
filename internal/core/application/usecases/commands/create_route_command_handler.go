package commands

import (
	"context"
)

type CreateRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

func NewCreateRouteCommandHandler(uowFactory RouteUoWFactory) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{uowFactory: uowFactory}
}

func (h CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) error {
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

	if err := uow.RouteRepository().Add(ctx, cmd.Route()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
