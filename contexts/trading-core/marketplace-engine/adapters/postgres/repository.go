package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	counterProducts = "products"
	counterOrders   = "orders"
)

// Repository is the PostgreSQL engine store. Every mutating method runs in
// one transaction, so the whole-operation boundary of the engine maps to a
// single-writer transaction boundary here.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, principal string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("principal = ?", principal).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrNotRegistered
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UserExists(ctx context.Context, principal string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("principal = ?", principal).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ChangeRole(ctx context.Context, input ports.ChangeRoleInput) (entities.User, error) {
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

	var updated entities.User
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&userModel{}).
			Where("principal = ?", input.Principal).
			Update("role", string(input.NewRole))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotRegistered
		}

		outboxRow := outboxModel{
			OutboxID:  input.OutboxID,
			EventType: "marketplace.role_changed",
			Payload:   payload,
			Status:    outboxStatusPending,
			CreatedAt: input.ChangedAt.UTC(),
		}
		if err := tx.Create(&outboxRow).Error; err != nil {
			return err
		}

		var row userModel
		if err := tx.Where("principal = ?", input.Principal).First(&row).Error; err != nil {
			return err
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	return updated, nil
}

func (r *Repository) CreateProduct(ctx context.Context, input ports.CreateProductInput, now time.Time) (entities.Product, error) {
	var created entities.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextSequence(tx, counterProducts)
		if err != nil {
			return err
		}
		row := productModel{
			ProductID:   id,
			Name:        input.Name,
			Description: input.Description,
			PriceCents:  input.PriceCents,
			Quantity:    input.Quantity,
			Category:    input.Category,
			Seller:      input.Seller,
			CreatedAt:   now.UTC(),
			UpdatedAt:   now.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		created = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Product{}, err
	}
	return created, nil
}

func (r *Repository) GetProduct(ctx context.Context, productID int64) (entities.Product, error) {
	var row productModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Product{}, domainerrors.ErrProductNotFound
		}
		return entities.Product{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProductsBySeller(ctx context.Context, seller string) ([]entities.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).
		Where("seller = ?", seller).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "product_id"}}).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// CreateOrder locks the product row, re-checks stock, decrements it and
// inserts the pending order inside one transaction.
func (r *Repository) CreateOrder(ctx context.Context, input ports.CreateOrderInput, now time.Time) (entities.Order, error) {
	var created entities.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product productModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", input.ProductID).
			First(&product).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrProductNotFound
			}
			return err
		}
		if input.Quantity > product.Quantity {
			return domainerrors.ErrInsufficientStock
		}

		result := tx.Model(&productModel{}).
			Where("product_id = ?", input.ProductID).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity - ?", input.Quantity),
				"updated_at": now.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}

		id, err := nextSequence(tx, counterOrders)
		if err != nil {
			return err
		}
		row := orderModel{
			OrderID:     id,
			Buyer:       input.Buyer,
			Seller:      input.Seller,
			ProductID:   input.ProductID,
			Quantity:    input.Quantity,
			Status:      string(entities.StatusPending),
			BuyerRated:  false,
			SellerRated: false,
			CreatedAt:   now.UTC(),
			UpdatedAt:   now.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		created = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	return created, nil
}

func (r *Repository) GetOrder(ctx context.Context, orderID int64) (entities.Order, error) {
	var row orderModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, domainerrors.ErrOrderNotFound
		}
		return entities.Order{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID int64, from, to entities.Status, now time.Time) (entities.Order, error) {
	var updated entities.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orderModel{}).
			Where("order_id = ? AND status = ?", orderID, string(from)).
			Updates(map[string]any{
				"status":     string(to),
				"updated_at": now.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var row orderModel
			if err := tx.Where("order_id = ?", orderID).First(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainerrors.ErrOrderNotFound
				}
				return err
			}
			return domainerrors.ErrInvalidState
		}

		var row orderModel
		if err := tx.Where("order_id = ?", orderID).First(&row).Error; err != nil {
			return err
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	return updated, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "principal"}}).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]entities.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "product_id"}}).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]entities.Order, error) {
	var rows []orderModel
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order_id"}}).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.OutboxRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxRow{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		}).
		Error
}

// nextSequence hands out dense sequential ids from a per-collection counter
// row, locked for the duration of the surrounding transaction.
func nextSequence(tx *gorm.DB, name string) (int64, error) {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&counterModel{Name: name, NextID: 0}).Error; err != nil {
		return 0, err
	}

	var counter counterModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&counter).
		Error
	if err != nil {
		return 0, err
	}

	id := counter.NextID
	err = tx.Model(&counterModel{}).
		Where("name = ?", name).
		Update("next_id", id+1).
		Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.Snapshot = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
