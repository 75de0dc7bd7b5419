package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// CachedLookup decorates a catalog.Lookup with a price cache. Cache
// failures are logged and the call falls through to the wrapped lookup.
type CachedLookup struct {
	next   catalog.Lookup
	cache  PriceCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedLookup creates a new CachedLookup
func NewCachedLookup(next catalog.Lookup, cache PriceCache, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{next: next, cache: cache, ttl: ttl, logger: logger.Named("price_cache")}
}

// ProductExists reports true for any product with a cached price
func (l *CachedLookup) ProductExists(ctx context.Context, id int64) (bool, error) {
	if _, ok := l.cached(ctx, id); ok {
		return true, nil
	}
	return l.next.ProductExists(ctx, id)
}

// GetPrice returns the cached price or loads and caches it
func (l *CachedLookup) GetPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	if price, ok := l.cached(ctx, id); ok {
		return price, nil
	}

	price, err := l.next.GetPrice(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if err := l.cache.Set(ctx, id, price, l.ttl); err != nil {
		l.logger.Warn("failed to cache price", zap.Int64("product_id", id), zap.Error(err))
	}
	return price, nil
}

func (l *CachedLookup) cached(ctx context.Context, id int64) (decimal.Decimal, bool) {
	price, ok, err := l.cache.Get(ctx, id)
	if err != nil {
		l.logger.Warn("price cache read failed", zap.Int64("product_id", id), zap.Error(err))
		return decimal.Zero, false
	}
	return price, ok
}

// Ensure CachedLookup implements catalog.Lookup
var _ catalog.Lookup = (*CachedLookup)(nil)
