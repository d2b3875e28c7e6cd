package http

import (
	"context"
	"time"

	"mercato/contexts/insights/reporting-service/application"
	httptransport "mercato/contexts/insights/reporting-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) TopSellersHandler(ctx context.Context, limit int) (httptransport.RankedUsersResponse, error) {
	ranked, err := h.Service.TopSellers(ctx, limit)
	if err != nil {
		return httptransport.RankedUsersResponse{}, err
	}
	return rankedUsersResponse(ranked), nil
}

func (h Handler) TopBuyersHandler(ctx context.Context, limit int) (httptransport.RankedUsersResponse, error) {
	ranked, err := h.Service.TopBuyers(ctx, limit)
	if err != nil {
		return httptransport.RankedUsersResponse{}, err
	}
	return rankedUsersResponse(ranked), nil
}

func (h Handler) BestSellingProductsHandler(ctx context.Context, limit int) (httptransport.RankedProductsResponse, error) {
	ranked, err := h.Service.BestSellingProducts(ctx, limit)
	if err != nil {
		return httptransport.RankedProductsResponse{}, err
	}
	response := httptransport.RankedProductsResponse{
		Products: make([]httptransport.RankedProductDTO, 0, len(ranked)),
	}
	for _, product := range ranked {
		response.Products = append(response.Products, httptransport.RankedProductDTO{
			ProductID: product.ProductID,
			Name:      product.Name,
			Seller:    product.Seller,
			UnitsSold: product.UnitsSold,
		})
	}
	return response, nil
}

func (h Handler) CategoryBreakdownHandler(ctx context.Context) (httptransport.CategoryBreakdownResponse, error) {
	stats, err := h.Service.CategoryBreakdown(ctx)
	if err != nil {
		return httptransport.CategoryBreakdownResponse{}, err
	}
	response := httptransport.CategoryBreakdownResponse{
		Categories: make([]httptransport.CategoryStatsDTO, 0, len(stats)),
	}
	for _, entry := range stats {
		response.Categories = append(response.Categories, httptransport.CategoryStatsDTO{
			Category:      entry.Category,
			ProductCount:  entry.ProductCount,
			UnitsInStock:  entry.UnitsInStock,
			AvgPriceCents: entry.AvgPriceCents,
		})
	}
	return response, nil
}

func (h Handler) UserActivityHandler(ctx context.Context, principal string) (httptransport.UserActivityResponse, error) {
	activity, err := h.Service.ActivityForUser(ctx, principal)
	if err != nil {
		return httptransport.UserActivityResponse{}, err
	}
	return httptransport.UserActivityResponse{
		Principal:      activity.Principal,
		OrdersAsBuyer:  activity.OrdersAsBuyer,
		OrdersAsSeller: activity.OrdersAsSeller,
		ByStatus:       activity.ByStatus,
		GeneratedAt:    activity.GeneratedAt.UTC().Format(time.RFC3339),
	}, nil
}

func rankedUsersResponse(ranked []application.RankedUser) httptransport.RankedUsersResponse {
	response := httptransport.RankedUsersResponse{
		Users: make([]httptransport.RankedUserDTO, 0, len(ranked)),
	}
	for _, user := range ranked {
		response.Users = append(response.Users, httptransport.RankedUserDTO{
			Principal:  user.Principal,
			Role:       user.Role,
			Reputation: user.Reputation,
		})
	}
	return response
}
