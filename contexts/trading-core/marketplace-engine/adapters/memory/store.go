package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Store owns the user registry, product catalog, order ledger and the
// notification outbox. One mutex serializes whole operations, so every call
// observes a single global history and the stock-reserve/order-insert pair
// commits as one step.
type Store struct {
	mu            sync.Mutex
	users         map[string]entities.User
	products      map[int64]entities.Product
	orders        map[int64]entities.Order
	outbox        []ports.OutboxRow
	nextProductID int64
	nextOrderID   int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]entities.User),
		products: make(map[int64]entities.Product),
		orders:   make(map[int64]entities.Order),
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Principal]; ok {
		return domainerrors.ErrAlreadyRegistered
	}
	s.users[user.Principal] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, principal string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[principal]
	if !ok {
		return entities.User{}, domainerrors.ErrNotRegistered
	}
	return user, nil
}

func (s *Store) UserExists(_ context.Context, principal string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[principal]
	return ok, nil
}

func (s *Store) ChangeRole(_ context.Context, input ports.ChangeRoleInput) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[input.Principal]
	if !ok {
		return entities.User{}, domainerrors.ErrNotRegistered
	}
	user.Role = input.NewRole
	s.users[input.Principal] = user

	payload, err := json.Marshal(ports.RoleChangedEvent{
		EventID:      input.EventID,
		Principal:    input.Principal,
		PreviousRole: string(input.OldRole),
		NewRole:      string(input.NewRole),
		OccurredAt:   input.ChangedAt,
	})
	if err != nil {
		return entities.User{}, err
	}
	s.outbox = append(s.outbox, ports.OutboxRow{
		OutboxID:  input.OutboxID,
		EventType: "marketplace.role_changed",
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: input.ChangedAt,
	})
	return user, nil
}

func (s *Store) CreateProduct(_ context.Context, input ports.CreateProductInput, now time.Time) (entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := entities.Product{
		ProductID:   s.nextProductID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Quantity:    input.Quantity,
		Category:    input.Category,
		Seller:      input.Seller,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	s.nextProductID++
	s.products[product.ProductID] = product
	return product, nil
}

func (s *Store) GetProduct(_ context.Context, productID int64) (entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return entities.Product{}, domainerrors.ErrProductNotFound
	}
	return product, nil
}

func (s *Store) ListProductsBySeller(_ context.Context, seller string) ([]entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.Product, 0)
	for _, product := range s.products {
		if product.Seller == seller {
			items = append(items, product)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items, nil
}

// CreateOrder decrements product stock and inserts the pending order under
// the same lock acquisition. No caller can observe one without the other.
func (s *Store) CreateOrder(_ context.Context, input ports.CreateOrderInput, now time.Time) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[input.ProductID]
	if !ok {
		return entities.Order{}, domainerrors.ErrProductNotFound
	}
	if input.Quantity > product.Quantity {
		return entities.Order{}, domainerrors.ErrInsufficientStock
	}

	product.Quantity -= input.Quantity
	product.UpdatedAt = now.UTC()
	s.products[input.ProductID] = product

	order := entities.Order{
		OrderID:     s.nextOrderID,
		Buyer:       input.Buyer,
		Seller:      input.Seller,
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		Status:      entities.StatusPending,
		BuyerRated:  false,
		SellerRated: false,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	s.nextOrderID++
	s.orders[order.OrderID] = order
	return order, nil
}

func (s *Store) GetOrder(_ context.Context, orderID int64) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	return order, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, orderID int64, from, to entities.Status, now time.Time) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	if order.Status != from {
		return entities.Order{}, domainerrors.ErrInvalidState
	}
	order.Status = to
	order.UpdatedAt = now.UTC()
	s.orders[orderID] = order
	return order, nil
}

func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Principal < items[j].Principal
	})
	return items, nil
}

func (s *Store) ListProducts(_ context.Context) ([]entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.Product, 0, len(s.products))
	for _, product := range s.products {
		items = append(items, product)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items, nil
}

func (s *Store) ListOrders(_ context.Context) ([]entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.Order, 0, len(s.orders))
	for _, order := range s.orders {
		items = append(items, order)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].OrderID < items[j].OrderID
	})
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxRow, 0)
	for _, row := range s.outbox {
		if row.Status != outboxStatusPending {
			continue
		}
		items = append(items, row)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			s.outbox[i].Status = outboxStatusPublished
			return nil
		}
	}
	return nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Snapshot = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
