package httptransport

import "time"

// ErrorResponse is the uniform error payload for engine endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterUserRequest is the request body for principal registration.
type RegisterUserRequest struct {
	Role string `json:"role"`
}

type UserDTO struct {
	Principal        string    `json:"principal"`
	Role             string    `json:"role"`
	BuyerReputation  int       `json:"buyer_reputation"`
	SellerReputation int       `json:"seller_reputation"`
	RegisteredAt     time.Time `json:"registered_at"`
}

type IsRegisteredResponse struct {
	Principal  string `json:"principal"`
	Registered bool   `json:"registered"`
}

type ChangeRoleRequest struct {
	NewRole string `json:"new_role"`
}

type ChangeRoleResponse struct {
	Principal    string `json:"principal"`
	PreviousRole string `json:"previous_role"`
	NewRole      string `json:"new_role"`
}

type PublishProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int    `json:"quantity"`
	Category    string `json:"category"`
}

type ProductDTO struct {
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

type ListProductsResponse struct {
	Seller   string       `json:"seller"`
	Products []ProductDTO `json:"products"`
}

type CreateOrderRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderDTO struct {
	OrderID     int64     `json:"order_id"`
	Buyer       string    `json:"buyer"`
	Seller      string    `json:"seller"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	BuyerRated  bool      `json:"buyer_rated"`
	SellerRated bool      `json:"seller_rated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
