package commands

import (
	"context"
)

// DeleteClientCommandHandler deletes the client's orders first (their items
// and history cascade in the store) and then the client, in one transaction.
type DeleteClientCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteClientCommandHandler(uowFactory UoWFactory) DeleteClientCommandHandler {
	return DeleteClientCommandHandler{uowFactory: uowFactory}
}

func (h DeleteClientCommandHandler) Handle(ctx context.Context, cmd DeleteClientCommand) error {
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

	clientRepo := uow.ClientRepository()
	orderRepo := uow.OrderRepository()

	if _, err := clientRepo.Get(ctx, cmd.ClientID()); err != nil {
		return err
	}

	orders, err := orderRepo.ListByClient(ctx, cmd.ClientID())
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err = orderRepo.Delete(ctx, o.ID()); err != nil {
			return err
		}
	}

	if err = clientRepo.Delete(ctx, cmd.ClientID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
