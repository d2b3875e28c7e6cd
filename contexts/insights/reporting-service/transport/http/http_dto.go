package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RankedUserDTO struct {
	Principal  string `json:"principal"`
	Role       string `json:"role"`
	Reputation int    `json:"reputation"`
}

type RankedUsersResponse struct {
	Users []RankedUserDTO `json:"users"`
}

type RankedProductDTO struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Seller    string `json:"seller"`
	UnitsSold int    `json:"units_sold"`
}

type RankedProductsResponse struct {
	Products []RankedProductDTO `json:"products"`
}

type CategoryStatsDTO struct {
	Category      string `json:"category"`
	ProductCount  int    `json:"product_count"`
	UnitsInStock  int    `json:"units_in_stock"`
	AvgPriceCents int64  `json:"avg_price_cents"`
}

type CategoryBreakdownResponse struct {
	Categories []CategoryStatsDTO `json:"categories"`
}

type UserActivityResponse struct {
	Principal      string         `json:"principal"`
	OrdersAsBuyer  int            `json:"orders_as_buyer"`
	OrdersAsSeller int            `json:"orders_as_seller"`
	ByStatus       map[string]int `json:"by_status"`
	GeneratedAt    string         `json:"generated_at"`
}
