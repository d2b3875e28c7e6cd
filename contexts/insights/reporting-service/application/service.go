package application

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	domainerrors "mercato/contexts/insights/reporting-service/domain/errors"
	"mercato/contexts/insights/reporting-service/ports"
)

const defaultRankingLimit = 5

// Service computes marketplace reports from the read-only Reader port.
type Service struct {
	Reader ports.Reader
	Clock  ports.Clock
	Logger *slog.Logger
}

type RankedUser struct {
	Principal  string
	Role       string
	Reputation int
}

type RankedProduct struct {
	ProductID int64
	Name      string
	Seller    string
	UnitsSold int
}

type CategoryStats struct {
	Category      string
	ProductCount  int
	UnitsInStock  int
	AvgPriceCents int64
}

type UserActivity struct {
	Principal      string
	OrdersAsBuyer  int
	OrdersAsSeller int
	ByStatus       map[string]int
	GeneratedAt    time.Time
}

// TopSellers ranks users by seller reputation, highest first. Only users
// whose role permits selling appear. Ties break on principal for a stable
// ordering.
func (s Service) TopSellers(ctx context.Context, limit int) ([]RankedUser, error) {
	if limit < 0 {
		return nil, domainerrors.ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultRankingLimit
	}
	users, err := s.Reader.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	ranked := make([]RankedUser, 0, len(users))
	for _, user := range users {
		if user.Role != ports.RoleSeller && user.Role != ports.RoleBoth {
			continue
		}
		ranked = append(ranked, RankedUser{
			Principal:  user.Principal,
			Role:       user.Role,
			Reputation: user.SellerReputation,
		})
	}
	sortRanked(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// TopBuyers ranks users by buyer reputation, highest first.
func (s Service) TopBuyers(ctx context.Context, limit int) ([]RankedUser, error) {
	if limit < 0 {
		return nil, domainerrors.ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultRankingLimit
	}
	users, err := s.Reader.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	ranked := make([]RankedUser, 0, len(users))
	for _, user := range users {
		if user.Role != ports.RoleBuyer && user.Role != ports.RoleBoth {
			continue
		}
		ranked = append(ranked, RankedUser{
			Principal:  user.Principal,
			Role:       user.Role,
			Reputation: user.BuyerReputation,
		})
	}
	sortRanked(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// BestSellingProducts ranks products by total units ordered across
// non-cancelled orders.
func (s Service) BestSellingProducts(ctx context.Context, limit int) ([]RankedProduct, error) {
	if limit < 0 {
		return nil, domainerrors.ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultRankingLimit
	}
	orders, err := s.Reader.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.Reader.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	sold := make(map[int64]int, len(products))
	for _, order := range orders {
		if order.Status == "CANCELLED" {
			continue
		}
		sold[order.ProductID] += order.Quantity
	}

	ranked := make([]RankedProduct, 0, len(sold))
	for _, product := range products {
		units, ok := sold[product.ProductID]
		if !ok {
			continue
		}
		ranked = append(ranked, RankedProduct{
			ProductID: product.ProductID,
			Name:      product.Name,
			Seller:    product.Seller,
			UnitsSold: units,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].UnitsSold != ranked[j].UnitsSold {
			return ranked[i].UnitsSold > ranked[j].UnitsSold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// CategoryBreakdown aggregates published products per category.
func (s Service) CategoryBreakdown(ctx context.Context) ([]CategoryStats, error) {
	products, err := s.Reader.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string]*CategoryStats)
	totals := make(map[string]int64)
	for _, product := range products {
		category := product.Category
		stats, ok := byCategory[category]
		if !ok {
			stats = &CategoryStats{Category: category}
			byCategory[category] = stats
		}
		stats.ProductCount++
		stats.UnitsInStock += product.Quantity
		totals[category] += product.PriceCents
	}
	out := make([]CategoryStats, 0, len(byCategory))
	for category, stats := range byCategory {
		stats.AvgPriceCents = totals[category] / int64(stats.ProductCount)
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// ActivityForUser counts a user's orders on both sides of the market.
func (s Service) ActivityForUser(ctx context.Context, principal string) (UserActivity, error) {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return UserActivity{}, domainerrors.ErrUserUnknown
	}
	users, err := s.Reader.ListUsers(ctx)
	if err != nil {
		return UserActivity{}, err
	}
	known := false
	for _, user := range users {
		if user.Principal == principal {
			known = true
			break
		}
	}
	if !known {
		return UserActivity{}, domainerrors.ErrUserUnknown
	}

	orders, err := s.Reader.ListOrders(ctx)
	if err != nil {
		return UserActivity{}, err
	}
	activity := UserActivity{
		Principal:   principal,
		ByStatus:    make(map[string]int),
		GeneratedAt: s.Clock.Now().UTC(),
	}
	for _, order := range orders {
		involved := false
		if order.Buyer == principal {
			activity.OrdersAsBuyer++
			involved = true
		}
		if order.Seller == principal {
			activity.OrdersAsSeller++
			involved = true
		}
		if involved {
			activity.ByStatus[order.Status]++
		}
	}
	return activity, nil
}

func sortRanked(ranked []RankedUser) {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Reputation != ranked[j].Reputation {
			return ranked[i].Reputation > ranked[j].Reputation
		}
		return ranked[i].Principal < ranked[j].Principal
	})
}
