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

type PublishProductCommand struct {
	Seller      string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Category    string
}

// PublishProductUseCase appends a listing owned by a seller-capable caller.
type PublishProductUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u PublishProductUseCase) Execute(ctx context.Context, cmd PublishProductCommand) (entities.Product, error) {
	logger := application.ResolveLogger(u.Logger)

	user, err := u.Repository.GetUser(ctx, cmd.Seller)
	if err != nil {
		return entities.Product{}, err
	}
	if err := services.RequireRole(user, entities.RoleSeller); err != nil {
		return entities.Product{}, err
	}
	if cmd.Quantity <= 0 {
		return entities.Product{}, domainerrors.ErrInvalidQuantity
	}
	if cmd.PriceCents < 0 {
		return entities.Product{}, domainerrors.ErrInvalidPrice
	}

	product, err := u.Repository.CreateProduct(ctx, ports.CreateProductInput{
		Seller:      cmd.Seller,
		Name:        cmd.Name,
		Description: cmd.Description,
		PriceCents:  cmd.PriceCents,
		Quantity:    cmd.Quantity,
		Category:    cmd.Category,
	}, u.now())
	if err != nil {
		return entities.Product{}, err
	}

	logger.Info("product published",
		"event", "engine_product_published",
		"module", "trading-core/marketplace-engine",
		"layer", "application",
		"seller", cmd.Seller,
		"product_id", product.ProductID,
		"quantity", product.Quantity,
	)
	return product, nil
}

func (u PublishProductUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
