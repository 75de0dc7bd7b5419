// Package cache keeps product prices close to the order lifecycle.
package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceCache stores product prices keyed by product id
type PriceCache interface {
	// Get returns the cached price and whether it was present
	Get(ctx context.Context, productID int64) (decimal.Decimal, bool, error)
	// Set stores a price for ttl
	Set(ctx context.Context, productID int64, price decimal.Decimal, ttl time.Duration) error
	// Delete evicts a price
	Delete(ctx context.Context, productID int64) error
	// Close releases the cache's resources
	Close() error
}
