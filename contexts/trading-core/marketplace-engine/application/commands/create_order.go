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

type CreateOrderCommand struct {
	Buyer     string
	ProductID int64
	Quantity  int
}

// CreateOrderUseCase validates the purchase, then reserves stock and inserts
// the order as one atomic repository step. Every validation runs before any
// mutation: a rejected call leaves catalog and ledger untouched.
type CreateOrderUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (entities.Order, error) {
	logger := application.ResolveLogger(u.Logger)

	user, err := u.Repository.GetUser(ctx, cmd.Buyer)
	if err != nil {
		return entities.Order{}, err
	}
	if err := services.RequireCanBuy(user); err != nil {
		return entities.Order{}, err
	}
	if cmd.Quantity <= 0 {
		return entities.Order{}, domainerrors.ErrInvalidQuantity
	}

	product, err := u.Repository.GetProduct(ctx, cmd.ProductID)
	if err != nil {
		return entities.Order{}, err
	}
	if cmd.Quantity > product.Quantity {
		logger.Warn("order rejected for insufficient stock",
			"event", "engine_order_stock_rejected",
			"module", "trading-core/marketplace-engine",
			"layer", "application",
			"buyer", cmd.Buyer,
			"product_id", cmd.ProductID,
			"requested", cmd.Quantity,
			"available", product.Quantity,
		)
		return entities.Order{}, domainerrors.ErrInsufficientStock
	}

	// The repository re-checks stock inside its transaction boundary so the
	// decrement and the order insert commit together or not at all.
	order, err := u.Repository.CreateOrder(ctx, ports.CreateOrderInput{
		Buyer:     cmd.Buyer,
		Seller:    product.Seller,
		ProductID: product.ProductID,
		Quantity:  cmd.Quantity,
	}, u.now())
	if err != nil {
		return entities.Order{}, err
	}

	logger.Info("order created",
		"event", "engine_order_created",
		"module", "trading-core/marketplace-engine",
		"layer", "application",
		"buyer", cmd.Buyer,
		"seller", order.Seller,
		"order_id", order.OrderID,
		"product_id", order.ProductID,
		"quantity", order.Quantity,
	)
	return order, nil
}

func (u CreateOrderUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
