package queries

import (
	"context"
	"log/slog"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

// GetOrderUseCase resolves an order id for the read surface.
type GetOrderUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u GetOrderUseCase) Execute(ctx context.Context, orderID int64) (entities.Order, error) {
	return u.Repository.GetOrder(ctx, orderID)
}

// GetProductUseCase resolves a product id for the read surface.
type GetProductUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u GetProductUseCase) Execute(ctx context.Context, productID int64) (entities.Product, error) {
	return u.Repository.GetProduct(ctx, productID)
}
