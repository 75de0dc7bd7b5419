package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Lookup resolves product existence and price for the order lifecycle
type Lookup interface {
	// ProductExists checks whether a product exists
	ProductExists(ctx context.Context, id int64) (bool, error)
	// GetPrice returns the product's current price; PRODUCT_NOT_FOUND when absent
	GetPrice(ctx context.Context, id int64) (decimal.Decimal, error)
}

// ProductRepository defines read access to catalog products
type ProductRepository interface {
	Lookup

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Save inserts a new product or updates an existing one
	Save(ctx context.Context, product *Product) error
}
