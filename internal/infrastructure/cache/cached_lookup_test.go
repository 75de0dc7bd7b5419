package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/tests/testutil"
)

// failingCache is a PriceCache whose every call errors
type failingCache struct{}

func (failingCache) Get(context.Context, int64) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, errors.New("connection refused")
}
func (failingCache) Set(context.Context, int64, decimal.Decimal, time.Duration) error {
	return errors.New("connection refused")
}
func (failingCache) Delete(context.Context, int64) error { return nil }
func (failingCache) Close() error                        { return nil }

func TestCachedLookup_GetPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("loads once then serves from cache", func(t *testing.T) {
		next := new(testutil.MockCatalogLookup).WithProduct(3, "20.00")
		store := NewInMemoryPriceCache()
		defer store.Close()
		lookup := NewCachedLookup(next, store, time.Minute, nil)

		for i := 0; i < 3; i++ {
			price, err := lookup.GetPrice(ctx, 3)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString("20").Equal(price))
		}

		next.AssertNumberOfCalls(t, "GetPrice", 1)

		exists, err := lookup.ProductExists(ctx, 3)
		require.NoError(t, err)
		assert.True(t, exists)
		next.AssertNotCalled(t, "ProductExists", ctx, int64(3))
	})

	t.Run("missing product is not cached", func(t *testing.T) {
		next := new(testutil.MockCatalogLookup)
		next.On("GetPrice", ctx, int64(9)).Return(decimal.Zero, shared.NewNotFoundError("Product", 9))
		store := NewInMemoryPriceCache()
		defer store.Close()
		lookup := NewCachedLookup(next, store, time.Minute, nil)

		_, err := lookup.GetPrice(ctx, 9)

		assert.True(t, shared.IsNotFound(err))
		assert.Equal(t, 0, store.Size())
	})

	t.Run("cache failures fall through", func(t *testing.T) {
		next := new(testutil.MockCatalogLookup).WithProduct(3, "20.00")
		lookup := NewCachedLookup(next, failingCache{}, time.Minute, nil)

		price, err := lookup.GetPrice(ctx, 3)

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("20").Equal(price))
	})
}
