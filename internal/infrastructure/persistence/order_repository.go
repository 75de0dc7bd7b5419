package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) query(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var model models.OrderModel
	if err := r.query(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Order", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists every order
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*order.Order, error) {
	return r.find(r.query(ctx).Scopes(paginate(filter)))
}

// FindByUserID lists the orders owned by a user
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID int64, filter shared.Filter) ([]*order.Order, error) {
	return r.find(r.query(ctx).Where("user_id = ?", userID).Scopes(paginate(filter)))
}

// FindByActive lists orders by their active flag
func (r *GormOrderRepository) FindByActive(ctx context.Context, active bool, filter shared.Filter) ([]*order.Order, error) {
	return r.find(r.query(ctx).Where("active = ?", active).Scopes(paginate(filter)))
}

// FindActiveByUserID returns the user's active order
func (r *GormOrderRepository) FindActiveByUserID(ctx context.Context, userID int64) (*order.Order, error) {
	var model models.OrderModel
	err := r.query(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeOrderNotFound, fmt.Sprintf("No active order for user: %d", userID))
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CreateActive retires the user's active orders and inserts o in one
// transaction. The user row is locked first so concurrent carts for the
// same user serialize; the partial unique index catches anything else.
func (r *GormOrderRepository) CreateActive(ctx context.Context, o *order.Order) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var lockedID int64
		if err := tx.Model(&models.UserModel{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", o.UserID).
			Scan(&lockedID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.OrderModel{}).
			Where("user_id = ? AND active = ?", o.UserID, true).
			Updates(map[string]any{"active": false, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		o.Active = true
		return r.insert(tx, o)
	})
}

// Save inserts a new order or replaces an existing one together with its product set
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if o.IsNew() {
			return r.insert(tx, o)
		}

		model := models.OrderModelFromDomain(o)
		result := tx.Model(model).
			Select("user_id", "total_price", "address", "active", "version", "updated_at").
			Updates(model)
		if result.Error != nil {
			return translateOrderWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("Order", o.ID)
		}
		return replaceProducts(tx, o.ID, o.ProductIDs)
	})
}

// Delete removes an order and its product set
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProductModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			if isForeignKeyViolation(result.Error) {
				return shared.NewDomainError(shared.CodeOrderHasFulfillment, "Order has a fulfillment record and cannot be deleted")
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("Order", id)
		}
		return nil
	})
}

// ExistsByID checks whether an order exists
func (r *GormOrderRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.OrderModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) find(db *gorm.DB) ([]*order.Order, error) {
	var rows []models.OrderModel
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*order.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, nil
}

func (r *GormOrderRepository) insert(tx *gorm.DB, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
		return translateOrderWriteError(err)
	}
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return replaceProducts(tx, o.ID, o.ProductIDs)
}

func replaceProducts(tx *gorm.DB, orderID int64, productIDs []int64) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderProductModel{}).Error; err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}
	rows := models.ProductRows(orderID, productIDs)
	return tx.Create(&rows).Error
}

func translateOrderWriteError(err error) error {
	if isUniqueViolation(err) {
		return shared.NewDomainError(shared.CodeActiveOrderConflict, "User already has an active order")
	}
	return err
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
