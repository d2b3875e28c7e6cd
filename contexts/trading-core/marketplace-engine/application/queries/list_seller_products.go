package queries

import (
	"context"
	"log/slog"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	"mercato/contexts/trading-core/marketplace-engine/domain/services"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

// ListSellerProductsQuery serves both the "my products" surface and lookups
// by an explicit seller principal.
type ListSellerProductsQuery struct {
	Seller string
}

// ListSellerProductsUseCase returns every listing owned by a seller-capable
// principal. An empty result is an error, not an empty list; callers depend
// on that distinction.
type ListSellerProductsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListSellerProductsUseCase) Execute(ctx context.Context, query ListSellerProductsQuery) ([]entities.Product, error) {
	user, err := u.Repository.GetUser(ctx, query.Seller)
	if err != nil {
		return nil, err
	}
	if err := services.RequireRole(user, entities.RoleSeller); err != nil {
		return nil, err
	}

	products, err := u.Repository.ListProductsBySeller(ctx, query.Seller)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domainerrors.ErrNoProducts
	}
	return products, nil
}
