package ports

import (
	"context"
	"time"
)

// Role values as rendered into UserRecord by readers.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleBoth   = "both"
)

// UserRecord is the reporting view of a registered user.
type UserRecord struct {
	Principal        string
	Role             string
	BuyerReputation  int
	SellerReputation int
	RegisteredAt     time.Time
}

// ProductRecord is the reporting view of a published product.
type ProductRecord struct {
	ProductID  int64
	Name       string
	PriceCents int64
	Quantity   int
	Category   string
	Seller     string
}

// OrderRecord is the reporting view of an order.
type OrderRecord struct {
	OrderID   int64
	Buyer     string
	Seller    string
	ProductID int64
	Quantity  int
	Status    string
	CreatedAt time.Time
}

// Reader exposes read-only marketplace data to reporting queries. The
// interface carries no mutation methods on purpose: reporting can observe
// the venue but never alter it.
type Reader interface {
	ListUsers(ctx context.Context) ([]UserRecord, error)
	ListProducts(ctx context.Context) ([]ProductRecord, error)
	ListOrders(ctx context.Context) ([]OrderRecord, error)
}

type Clock interface {
	Now() time.Time
}
