package ports

import (
	"context"
	"time"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
)

// ChangeRoleInput carries the role update and the outbox row persisted with
// it in the same transaction.
type ChangeRoleInput struct {
	Principal string
	OldRole   entities.Role
	NewRole   entities.Role
	OutboxID  string
	EventID   string
	ChangedAt time.Time
}

type CreateProductInput struct {
	Seller      string
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Category    string
}

type CreateOrderInput struct {
	Buyer     string
	Seller    string
	ProductID int64
	Quantity  int
}

// Repository is the engine store: users, products, orders and the outbox.
// Every method is one atomic step; in particular CreateOrder must decrement
// product stock and insert the order so that neither is ever observable
// without the other.
type Repository interface {
	CreateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, principal string) (entities.User, error)
	UserExists(ctx context.Context, principal string) (bool, error)
	ChangeRole(ctx context.Context, input ChangeRoleInput) (entities.User, error)

	CreateProduct(ctx context.Context, input CreateProductInput, now time.Time) (entities.Product, error)
	GetProduct(ctx context.Context, productID int64) (entities.Product, error)
	ListProductsBySeller(ctx context.Context, seller string) ([]entities.Product, error)

	CreateOrder(ctx context.Context, input CreateOrderInput, now time.Time) (entities.Order, error)
	GetOrder(ctx context.Context, orderID int64) (entities.Order, error)
	// UpdateOrderStatus applies from -> to only if the order is still in
	// from; a stale from reports ErrInvalidState.
	UpdateOrderStatus(ctx context.Context, orderID int64, from, to entities.Status, now time.Time) (entities.Order, error)
}

// Snapshot is the read-only view of committed engine state. It is the only
// capability handed to the reporting side, so mutation is denied at the
// interface level rather than by convention.
type Snapshot interface {
	ListUsers(ctx context.Context) ([]entities.User, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
}

// OutboxRow is one pending role-change notification awaiting relay.
type OutboxRow struct {
	OutboxID  string
	EventType string
	Payload   []byte
	Status    string // pending, published
	CreatedAt time.Time
}

// OutboxRepository is consumed by the relay worker that drains notifications.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxRow, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}
