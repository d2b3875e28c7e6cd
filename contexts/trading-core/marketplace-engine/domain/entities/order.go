package entities

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusShipped  Status = "SHIPPED"
	StatusReceived Status = "RECEIVED"
	// StatusCancelled is declared but has no inbound transition; mutual-consent
	// cancellation is not delivered behavior.
	StatusCancelled Status = "CANCELLED"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusShipped: true},
	StatusShipped:   {StatusReceived: true},
	StatusReceived:  {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// Order is one purchase against a product. Buyer, Seller, ProductID and
// Quantity are immutable after creation; Status only moves forward along
// CanTransition edges.
type Order struct {
	OrderID     int64     `json:"order_id"`
	Buyer       string    `json:"buyer"`
	Seller      string    `json:"seller"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Status      Status    `json:"status"`
	BuyerRated  bool      `json:"buyer_rated"`
	SellerRated bool      `json:"seller_rated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
