package httpadapter

import (
	"context"
	"log/slog"

	application "mercato/contexts/trading-core/marketplace-engine/application"
	"mercato/contexts/trading-core/marketplace-engine/application/commands"
	"mercato/contexts/trading-core/marketplace-engine/application/queries"
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	httptransport "mercato/contexts/trading-core/marketplace-engine/transport/http"
)

// Handler maps HTTP DTOs to engine commands and queries. The caller
// principal arrives already authenticated; this layer never derives it from
// request content.
type Handler struct {
	RegisterUser       commands.RegisterUserUseCase
	ChangeRole         commands.ChangeRoleUseCase
	PublishProduct     commands.PublishProductUseCase
	CreateOrder        commands.CreateOrderUseCase
	MarkShipped        commands.MarkShippedUseCase
	MarkReceived       commands.MarkReceivedUseCase
	LookupUser         queries.LookupUserUseCase
	ListSellerProducts queries.ListSellerProductsUseCase
	GetOrder           queries.GetOrderUseCase
	GetProduct         queries.GetProductUseCase
	Logger             *slog.Logger
}

func (h Handler) RegisterUserHandler(ctx context.Context, caller string, request httptransport.RegisterUserRequest) (httptransport.UserDTO, error) {
	role, ok := entities.ParseRole(request.Role)
	if !ok {
		return httptransport.UserDTO{}, domainerrors.ErrWrongRole
	}
	user, err := h.RegisterUser.Execute(ctx, commands.RegisterUserCommand{
		Principal: caller,
		Role:      role,
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return userDTO(user), nil
}

func (h Handler) IsRegisteredHandler(ctx context.Context, principal string) (httptransport.IsRegisteredResponse, error) {
	registered, err := h.LookupUser.IsRegistered(ctx, principal)
	if err != nil {
		return httptransport.IsRegisteredResponse{}, err
	}
	return httptransport.IsRegisteredResponse{
		Principal:  principal,
		Registered: registered,
	}, nil
}

func (h Handler) LookupUserHandler(ctx context.Context, principal string) (httptransport.UserDTO, error) {
	user, err := h.LookupUser.Execute(ctx, principal)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return userDTO(user), nil
}

func (h Handler) ChangeRoleHandler(ctx context.Context, caller string, request httptransport.ChangeRoleRequest) (httptransport.ChangeRoleResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	role, ok := entities.ParseRole(request.NewRole)
	if !ok {
		return httptransport.ChangeRoleResponse{}, domainerrors.ErrInvalidRoleChange
	}
	previous, err := h.LookupUser.Execute(ctx, caller)
	if err != nil {
		return httptransport.ChangeRoleResponse{}, err
	}
	updated, err := h.ChangeRole.Execute(ctx, commands.ChangeRoleCommand{
		Principal: caller,
		NewRole:   role,
	})
	if err != nil {
		logger.Warn("http role change failed",
			"event", "engine_http_role_change_failed",
			"module", "trading-core/marketplace-engine",
			"layer", "transport",
			"principal", caller,
			"error", err.Error(),
		)
		return httptransport.ChangeRoleResponse{}, err
	}
	return httptransport.ChangeRoleResponse{
		Principal:    updated.Principal,
		PreviousRole: string(previous.Role),
		NewRole:      string(updated.Role),
	}, nil
}

func (h Handler) PublishProductHandler(ctx context.Context, caller string, request httptransport.PublishProductRequest) (httptransport.ProductDTO, error) {
	product, err := h.PublishProduct.Execute(ctx, commands.PublishProductCommand{
		Seller:      caller,
		Name:        request.Name,
		Description: request.Description,
		PriceCents:  request.PriceCents,
		Quantity:    request.Quantity,
		Category:    request.Category,
	})
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return productDTO(product), nil
}

func (h Handler) ListMyProductsHandler(ctx context.Context, caller string) (httptransport.ListProductsResponse, error) {
	return h.listProducts(ctx, caller)
}

func (h Handler) ListProductsBySellerHandler(ctx context.Context, seller string) (httptransport.ListProductsResponse, error) {
	return h.listProducts(ctx, seller)
}

func (h Handler) listProducts(ctx context.Context, seller string) (httptransport.ListProductsResponse, error) {
	products, err := h.ListSellerProducts.Execute(ctx, queries.ListSellerProductsQuery{Seller: seller})
	if err != nil {
		return httptransport.ListProductsResponse{}, err
	}
	items := make([]httptransport.ProductDTO, 0, len(products))
	for _, product := range products {
		items = append(items, productDTO(product))
	}
	return httptransport.ListProductsResponse{
		Seller:   seller,
		Products: items,
	}, nil
}

func (h Handler) GetProductHandler(ctx context.Context, productID int64) (httptransport.ProductDTO, error) {
	product, err := h.GetProduct.Execute(ctx, productID)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return productDTO(product), nil
}

func (h Handler) CreateOrderHandler(ctx context.Context, caller string, request httptransport.CreateOrderRequest) (httptransport.OrderDTO, error) {
	order, err := h.CreateOrder.Execute(ctx, commands.CreateOrderCommand{
		Buyer:     caller,
		ProductID: request.ProductID,
		Quantity:  request.Quantity,
	})
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return orderDTO(order), nil
}

func (h Handler) MarkShippedHandler(ctx context.Context, caller string, orderID int64) (httptransport.OrderDTO, error) {
	order, err := h.MarkShipped.Execute(ctx, commands.MarkShippedCommand{
		Caller:  caller,
		OrderID: orderID,
	})
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return orderDTO(order), nil
}

func (h Handler) MarkReceivedHandler(ctx context.Context, caller string, orderID int64) (httptransport.OrderDTO, error) {
	order, err := h.MarkReceived.Execute(ctx, commands.MarkReceivedCommand{
		Caller:  caller,
		OrderID: orderID,
	})
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return orderDTO(order), nil
}

func (h Handler) GetOrderHandler(ctx context.Context, orderID int64) (httptransport.OrderDTO, error) {
	order, err := h.GetOrder.Execute(ctx, orderID)
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return orderDTO(order), nil
}

func userDTO(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		Principal:        user.Principal,
		Role:             string(user.Role),
		BuyerReputation:  user.BuyerReputation,
		SellerReputation: user.SellerReputation,
		RegisteredAt:     user.RegisteredAt,
	}
}

func productDTO(product entities.Product) httptransport.ProductDTO {
	return httptransport.ProductDTO{
		ProductID:   product.ProductID,
		Name:        product.Name,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Quantity:    product.Quantity,
		Category:    product.Category,
		Seller:      product.Seller,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func orderDTO(order entities.Order) httptransport.OrderDTO {
	return httptransport.OrderDTO{
		OrderID:     order.OrderID,
		Buyer:       order.Buyer,
		Seller:      order.Seller,
		ProductID:   order.ProductID,
		Quantity:    order.Quantity,
		Status:      string(order.Status),
		BuyerRated:  order.BuyerRated,
		SellerRated: order.SellerRated,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
