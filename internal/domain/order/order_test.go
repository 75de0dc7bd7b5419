package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCart(t *testing.T) *Order {
	o, err := NewActiveOrder(7, 3, price("20.00"), 2)
	require.NoError(t, err)
	o.ID = 100
	return o
}

func domainCode(t *testing.T, err error) string {
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{4, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeQuantity(tt.in))
	}
}

func TestNewActiveOrder(t *testing.T) {
	t.Run("starts with a single product and price times quantity", func(t *testing.T) {
		o := newTestCart(t)

		assert.Equal(t, int64(7), o.UserID)
		assert.Equal(t, []int64{3}, o.ProductIDs)
		assert.True(t, o.TotalPrice.Equal(price("40.00")))
		assert.Equal(t, "", o.Address)
		assert.True(t, o.Active)
		assert.Equal(t, 1, o.Version)
	})

	t.Run("non-positive quantity counts as one", func(t *testing.T) {
		o, err := NewActiveOrder(7, 3, price("20.00"), 0)
		require.NoError(t, err)
		assert.True(t, o.TotalPrice.Equal(price("20.00")))

		o, err = NewActiveOrder(7, 3, price("20.00"), -3)
		require.NoError(t, err)
		assert.True(t, o.TotalPrice.Equal(price("20.00")))
	})

	t.Run("rejects missing user", func(t *testing.T) {
		_, err := NewActiveOrder(0, 3, price("20.00"), 1)
		assert.Equal(t, shared.CodeInvalidInput, domainCode(t, err))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewActiveOrder(7, 3, price("-1"), 1)
		assert.Equal(t, shared.CodeInvalidInput, domainCode(t, err))
	})
}

func TestOrder_AddProduct(t *testing.T) {
	t.Run("same product accumulates price but not line items", func(t *testing.T) {
		o := newTestCart(t)

		require.NoError(t, o.AddProduct(7, 3, price("20.00"), 1))

		assert.True(t, o.TotalPrice.Equal(price("60.00")))
		assert.Equal(t, []int64{3}, o.ProductIDs)
		assert.Equal(t, 1, o.LineItemCount())
	})

	t.Run("new product extends the set", func(t *testing.T) {
		o := newTestCart(t)

		require.NoError(t, o.AddProduct(7, 5, price("9.99"), 3))

		assert.True(t, o.TotalPrice.Equal(price("69.97")))
		assert.Equal(t, []int64{3, 5}, o.ProductIDs)
	})

	t.Run("caller must own the order", func(t *testing.T) {
		o := newTestCart(t)

		err := o.AddProduct(8, 3, price("20.00"), 1)

		assert.Equal(t, shared.CodeForbidden, domainCode(t, err))
		assert.True(t, o.TotalPrice.Equal(price("40.00")))
	})

	t.Run("order must be active", func(t *testing.T) {
		o := newTestCart(t)
		o.Active = false

		err := o.AddProduct(7, 3, price("20.00"), 1)

		assert.Equal(t, shared.CodeOrderNotActive, domainCode(t, err))
		assert.Equal(t, []int64{3}, o.ProductIDs)
	})
}

func TestNewOrder_SumsDistinctProducts(t *testing.T) {
	o, err := NewOrder(7, []PricedProduct{
		{ProductID: 1, Price: price("10.50")},
		{ProductID: 2, Price: price("4.50")},
		{ProductID: 1, Price: price("10.50")},
	}, "Main St 1")
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, o.ProductIDs)
	assert.True(t, o.TotalPrice.Equal(price("15.00")))
	assert.True(t, o.Active)
	assert.Equal(t, "Main St 1", o.Address)
}

func TestOrder_Replace(t *testing.T) {
	o := newTestCart(t)
	require.NoError(t, o.AddProduct(7, 3, price("20.00"), 5))

	err := o.Replace(9, []PricedProduct{{ProductID: 3, Price: price("20.00")}}, "Elm St 2", false)
	require.NoError(t, err)

	assert.Equal(t, int64(9), o.UserID)
	assert.True(t, o.TotalPrice.Equal(price("20.00")), "replace recomputes instead of accumulating")
	assert.Equal(t, "Elm St 2", o.Address)
	assert.False(t, o.Active)
}

func TestOrder_Checkout(t *testing.T) {
	t.Run("sets address and retires the cart", func(t *testing.T) {
		o := newTestCart(t)

		require.NoError(t, o.Checkout(7, "Oak Ave 3"))

		assert.False(t, o.Active)
		assert.Equal(t, "Oak Ave 3", o.Address)
	})

	t.Run("rejects another user's order", func(t *testing.T) {
		o := newTestCart(t)
		assert.Equal(t, shared.CodeForbidden, domainCode(t, o.Checkout(8, "x")))
	})

	t.Run("rejects an inactive order", func(t *testing.T) {
		o := newTestCart(t)
		o.Active = false
		assert.Equal(t, shared.CodeOrderNotActive, domainCode(t, o.Checkout(7, "x")))
	})
}
