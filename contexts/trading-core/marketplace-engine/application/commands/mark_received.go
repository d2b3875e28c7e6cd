package commands

import (
	"context"
	"log/slog"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

type MarkReceivedCommand struct {
	Caller  string
	OrderID int64
}

// MarkReceivedUseCase advances a shipped order to its terminal received
// state; only the order's buyer is an acceptable caller.
type MarkReceivedUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u MarkReceivedUseCase) Execute(ctx context.Context, cmd MarkReceivedCommand) (entities.Order, error) {
	return transitionOrder(ctx, u.Repository, u.Clock, u.Logger, cmd.Caller, cmd.OrderID, entities.StatusReceived)
}
