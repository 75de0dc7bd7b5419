package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/domain/catalog"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Product", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ProductExists checks whether a product exists
func (r *GormProductRepository) ProductExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetPrice returns the product's current price
func (r *GormProductRepository) GetPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	var model models.ProductModel
	if err := conn(ctx, r.db).Select("id", "price").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.NewNotFoundError("Product", id)
		}
		return decimal.Zero, err
	}
	return model.Price, nil
}

// Save inserts a new product or updates an existing one
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	product.ID = model.ID
	product.CreatedAt = model.CreatedAt
	product.UpdatedAt = model.UpdatedAt
	return nil
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
