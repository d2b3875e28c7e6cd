package postgresadapter

import (
	"time"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
)

type userModel struct {
	Principal        string    `gorm:"column:principal;primaryKey"`
	Role             string    `gorm:"column:role"`
	BuyerReputation  int       `gorm:"column:buyer_reputation"`
	SellerReputation int       `gorm:"column:seller_reputation"`
	RegisteredAt     time.Time `gorm:"column:registered_at"`
}

func (userModel) TableName() string { return "marketplace_users" }

func (m userModel) toEntity() entities.User {
	return entities.User{
		Principal:        m.Principal,
		Role:             entities.Role(m.Role),
		BuyerReputation:  m.BuyerReputation,
		SellerReputation: m.SellerReputation,
		RegisteredAt:     m.RegisteredAt,
	}
}

func userModelFromEntity(u entities.User) userModel {
	return userModel{
		Principal:        u.Principal,
		Role:             string(u.Role),
		BuyerReputation:  u.BuyerReputation,
		SellerReputation: u.SellerReputation,
		RegisteredAt:     u.RegisteredAt.UTC(),
	}
}

type productModel struct {
	ProductID   int64     `gorm:"column:product_id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	PriceCents  int64     `gorm:"column:price_cents"`
	Quantity    int       `gorm:"column:quantity"`
	Category    string    `gorm:"column:category"`
	Seller      string    `gorm:"column:seller"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "marketplace_products" }

func (m productModel) toEntity() entities.Product {
	return entities.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		Quantity:    m.Quantity,
		Category:    m.Category,
		Seller:      m.Seller,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type orderModel struct {
	OrderID     int64     `gorm:"column:order_id;primaryKey"`
	Buyer       string    `gorm:"column:buyer"`
	Seller      string    `gorm:"column:seller"`
	ProductID   int64     `gorm:"column:product_id"`
	Quantity    int       `gorm:"column:quantity"`
	Status      string    `gorm:"column:status"`
	BuyerRated  bool      `gorm:"column:buyer_rated"`
	SellerRated bool      `gorm:"column:seller_rated"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderModel) TableName() string { return "marketplace_orders" }

func (m orderModel) toEntity() entities.Order {
	return entities.Order{
		OrderID:     m.OrderID,
		Buyer:       m.Buyer,
		Seller:      m.Seller,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		Status:      entities.Status(m.Status),
		BuyerRated:  m.BuyerRated,
		SellerRated: m.SellerRated,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "marketplace_outbox" }

type counterModel struct {
	Name   string `gorm:"column:name;primaryKey"`
	NextID int64  `gorm:"column:next_id"`
}

func (counterModel) TableName() string { return "marketplace_counters" }
