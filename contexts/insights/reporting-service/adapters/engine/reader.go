// Package engine adapts the marketplace engine's read-only snapshot into the
// reporting Reader port.
package engine

import (
	"context"

	reportingports "mercato/contexts/insights/reporting-service/ports"
	engineports "mercato/contexts/trading-core/marketplace-engine/ports"
)

// Reader translates engine entities into reporting records. It holds only the
// Snapshot capability, so this side of the system cannot mutate venue state.
type Reader struct {
	Snapshot engineports.Snapshot
}

var _ reportingports.Reader = Reader{}

func NewReader(snapshot engineports.Snapshot) Reader {
	return Reader{Snapshot: snapshot}
}

func (r Reader) ListUsers(ctx context.Context) ([]reportingports.UserRecord, error) {
	users, err := r.Snapshot.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]reportingports.UserRecord, 0, len(users))
	for _, user := range users {
		records = append(records, reportingports.UserRecord{
			Principal:        user.Principal,
			Role:             string(user.Role),
			BuyerReputation:  user.BuyerReputation,
			SellerReputation: user.SellerReputation,
			RegisteredAt:     user.RegisteredAt,
		})
	}
	return records, nil
}

func (r Reader) ListProducts(ctx context.Context) ([]reportingports.ProductRecord, error) {
	products, err := r.Snapshot.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]reportingports.ProductRecord, 0, len(products))
	for _, product := range products {
		records = append(records, reportingports.ProductRecord{
			ProductID:  product.ProductID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   product.Quantity,
			Category:   product.Category,
			Seller:     product.Seller,
		})
	}
	return records, nil
}

func (r Reader) ListOrders(ctx context.Context) ([]reportingports.OrderRecord, error) {
	orders, err := r.Snapshot.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]reportingports.OrderRecord, 0, len(orders))
	for _, order := range orders {
		records = append(records, reportingports.OrderRecord{
			OrderID:   order.OrderID,
			Buyer:     order.Buyer,
			Seller:    order.Seller,
			ProductID: order.ProductID,
			Quantity:  order.Quantity,
			Status:    string(order.Status),
			CreatedAt: order.CreatedAt,
		})
	}
	return records, nil
}
