package commands

import (
	"context"
	"log/slog"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

type MarkShippedCommand struct {
	Caller  string
	OrderID int64
}

// MarkShippedUseCase advances a pending order to shipped; only the order's
// seller is an acceptable caller.
type MarkShippedUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u MarkShippedUseCase) Execute(ctx context.Context, cmd MarkShippedCommand) (entities.Order, error) {
	return transitionOrder(ctx, u.Repository, u.Clock, u.Logger, cmd.Caller, cmd.OrderID, entities.StatusShipped)
}
