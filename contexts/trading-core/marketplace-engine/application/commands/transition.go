package commands

import (
	"context"
	"log/slog"
	"time"

	application "mercato/contexts/trading-core/marketplace-engine/application"
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	"mercato/contexts/trading-core/marketplace-engine/domain/services"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

// transitionOrder is the shared path for MarkShipped and MarkReceived.
// The actor check fires on caller identity regardless of current state, then
// the state-table check fires independently; both must pass.
func transitionOrder(
	ctx context.Context,
	repo ports.Repository,
	clock ports.Clock,
	logger *slog.Logger,
	caller string,
	orderID int64,
	target entities.Status,
) (entities.Order, error) {
	logger = application.ResolveLogger(logger)

	if _, err := repo.GetUser(ctx, caller); err != nil {
		return entities.Order{}, err
	}
	order, err := repo.GetOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if err := services.RequireOrderTransitionActor(order, caller, target); err != nil {
		return entities.Order{}, err
	}
	if !entities.CanTransition(order.Status, target) {
		return entities.Order{}, domainerrors.ErrInvalidState
	}

	now := time.Now().UTC()
	if clock != nil {
		now = clock.Now().UTC()
	}
	updated, err := repo.UpdateOrderStatus(ctx, orderID, order.Status, target, now)
	if err != nil {
		return entities.Order{}, err
	}

	logger.Info("order state advanced",
		"event", "engine_order_transitioned",
		"module", "trading-core/marketplace-engine",
		"layer", "application",
		"order_id", orderID,
		"caller", caller,
		"from", string(order.Status),
		"to", string(target),
	)
	return updated, nil
}
