package entities

import "time"

// Product is one catalog listing. ProductID is a dense sequential integer
// assigned by the engine at publication; Quantity only ever decreases, via
// order creation.
type Product struct {
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	Seller      string    `json:"seller"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
