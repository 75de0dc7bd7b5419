package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderedRepository implements fulfillment.Repository using GORM
type GormOrderedRepository struct {
	db *gorm.DB
}

// NewGormOrderedRepository creates a new GormOrderedRepository
func NewGormOrderedRepository(db *gorm.DB) *GormOrderedRepository {
	return &GormOrderedRepository{db: db}
}

// FindByID finds a fulfillment record by ID
func (r *GormOrderedRepository) FindByID(ctx context.Context, id int64) (*fulfillment.Ordered, error) {
	var model models.OrderedModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Ordered", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists every record
func (r *GormOrderedRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	return r.find(conn(ctx, r.db).Scopes(paginate(filter)))
}

// FindByUserID lists records placed by a user
func (r *GormOrderedRepository) FindByUserID(ctx context.Context, userID int64, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	return r.find(conn(ctx, r.db).Where("user_id = ?", userID).Scopes(paginate(filter)))
}

// FindByDate lists records placed on a calendar date
func (r *GormOrderedRepository) FindByDate(ctx context.Context, date time.Time, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	return r.find(conn(ctx, r.db).Where("date = ?", fulfillment.DateOf(date)).Scopes(paginate(filter)))
}

// FindByState lists records in a state
func (r *GormOrderedRepository) FindByState(ctx context.Context, state fulfillment.State, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	return r.find(conn(ctx, r.db).Where("state = ?", state).Scopes(paginate(filter)))
}

// CountByState counts records in a state
func (r *GormOrderedRepository) CountByState(ctx context.Context, state fulfillment.State) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.OrderedModel{}).Where("state = ?", state).Count(&count).Error
	return count, err
}

// ExistsByOrderID checks whether an order already has a record
func (r *GormOrderedRepository) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.OrderedModel{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts a new record or overwrites an existing one
func (r *GormOrderedRepository) Save(ctx context.Context, o *fulfillment.Ordered) error {
	model := models.OrderedModelFromDomain(o)
	db := conn(ctx, r.db)

	if o.IsNew() {
		if err := db.Create(model).Error; err != nil {
			return r.translateWriteError(db, model, err)
		}
		o.ID = model.ID
		o.CreatedAt = model.CreatedAt
		o.UpdatedAt = model.UpdatedAt
		return nil
	}

	result := db.Model(model).
		Select("order_id", "user_id", "date", "state", "version", "updated_at").
		Updates(model)
	if result.Error != nil {
		return r.translateWriteError(db, model, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Ordered", o.ID)
	}
	return nil
}

// SaveWithLock updates a record only if its stored version still matches,
// then advances the version.
func (r *GormOrderedRepository) SaveWithLock(ctx context.Context, o *fulfillment.Ordered) error {
	model := models.OrderedModelFromDomain(o)
	model.Version = o.NextVersion()

	db := conn(ctx, r.db)
	result := db.
		Model(&models.OrderedModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Select("order_id", "user_id", "date", "state", "version", "updated_at").
		Updates(model)
	if result.Error != nil {
		return r.translateWriteError(db, model, result.Error)
	}
	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, o.ID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewNotFoundError("Ordered", o.ID)
		}
		return shared.ErrConcurrencyConflict
	}

	o.Version = model.Version
	return nil
}

// Delete removes a record by ID
func (r *GormOrderedRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&models.OrderedModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Ordered", id)
	}
	return nil
}

func (r *GormOrderedRepository) exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.OrderedModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderedRepository) find(db *gorm.DB) ([]*fulfillment.Ordered, error) {
	var rows []models.OrderedModel
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]*fulfillment.Ordered, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

func (r *GormOrderedRepository) translateWriteError(db *gorm.DB, model *models.OrderedModel, err error) error {
	switch {
	case isUniqueViolation(err):
		return shared.NewDomainError(shared.CodeOrderAlreadyPlaced, "Order already has a fulfillment record")
	case isForeignKeyViolation(err):
		if r.userMissing(db, model.UserID, err) {
			return shared.NewDomainError(shared.CodeUserNotFound, fmt.Sprintf("User not found: %d", model.UserID))
		}
		return shared.NewDomainError(shared.CodeOrderNotFound, fmt.Sprintf("Order not found: %d", model.OrderID))
	}
	return err
}

// userMissing decides which reference a foreign key violation refers to.
// lib/pq names the constraint; translated errors do not, so the users table
// is consulted instead. A failed lookup blames the order.
func (r *GormOrderedRepository) userMissing(db *gorm.DB, userID int64, err error) bool {
	if constraint := violatedConstraint(err); constraint != "" {
		return strings.Contains(constraint, "user_id")
	}
	var count int64
	if lookupErr := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Count(&count).Error; lookupErr != nil {
		return false
	}
	return count == 0
}

// Ensure GormOrderedRepository implements fulfillment.Repository
var _ fulfillment.Repository = (*GormOrderedRepository)(nil)
