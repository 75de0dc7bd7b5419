package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/tests/testutil"
)

type managerFixture struct {
	orders    *testutil.MockOrderRepository
	products  *testutil.MockCatalogLookup
	users     *testutil.MockUserRepository
	publisher *testutil.RecordingPublisher
	manager   *ActiveOrderManager
}

func newManagerFixture() *managerFixture {
	f := &managerFixture{
		orders:    new(testutil.MockOrderRepository),
		products:  new(testutil.MockCatalogLookup),
		users:     new(testutil.MockUserRepository),
		publisher: new(testutil.RecordingPublisher),
	}
	f.manager = NewActiveOrderManager(f.orders, f.products, f.users)
	f.manager.SetEventPublisher(f.publisher)
	return f
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestActiveOrderManager_CreateActiveOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new active order priced at price times quantity", func(t *testing.T) {
		f := newManagerFixture()
		f.users.WithUser(7)
		f.products.WithProduct(3, "20.00")
		f.orders.On("CreateActive", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*order.Order).ID = 42
			}).
			Return(nil)

		resp, err := f.manager.CreateActiveOrder(ctx, 7, OrderProductRequest{ProductID: 3, Quantity: 2})

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, int64(7), resp.UserID)
		assert.Equal(t, []int64{3}, resp.ProductIDs)
		assert.Equal(t, 40.0, resp.TotalPrice)
		assert.True(t, resp.Active)
		assert.Equal(t, "", resp.Address)
		assert.Equal(t, []string{order.EventTypeActiveOrderCreated}, f.publisher.Types())
		f.orders.AssertExpectations(t)
	})

	t.Run("non-positive quantity is normalized to one", func(t *testing.T) {
		f := newManagerFixture()
		f.users.WithUser(7)
		f.products.WithProduct(3, "20.00")
		f.orders.On("CreateActive", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.manager.CreateActiveOrder(ctx, 7, OrderProductRequest{ProductID: 3, Quantity: 0})

		require.NoError(t, err)
		assert.Equal(t, 20.0, resp.TotalPrice)
	})

	t.Run("unknown user fails before any write", func(t *testing.T) {
		f := newManagerFixture()
		f.users.WithoutUser(7)

		_, err := f.manager.CreateActiveOrder(ctx, 7, OrderProductRequest{ProductID: 3, Quantity: 1})

		assert.Equal(t, shared.CodeUserNotFound, codeOf(t, err))
		f.orders.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything)
	})

	t.Run("unknown product fails before any write", func(t *testing.T) {
		f := newManagerFixture()
		f.users.WithUser(7)
		f.products.WithoutProduct(3)

		_, err := f.manager.CreateActiveOrder(ctx, 7, OrderProductRequest{ProductID: 3, Quantity: 1})

		assert.Equal(t, shared.CodeProductNotFound, codeOf(t, err))
		f.orders.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.Types())
	})

	t.Run("storage conflict is returned", func(t *testing.T) {
		f := newManagerFixture()
		f.users.WithUser(7)
		f.products.WithProduct(3, "20.00")
		conflict := shared.NewDomainError(shared.CodeActiveOrderConflict, "conflict")
		f.orders.On("CreateActive", ctx, mock.AnythingOfType("*order.Order")).Return(conflict)

		_, err := f.manager.CreateActiveOrder(ctx, 7, OrderProductRequest{ProductID: 3, Quantity: 1})

		assert.Equal(t, shared.CodeActiveOrderConflict, codeOf(t, err))
	})
}

func TestActiveOrderManager_AddProduct(t *testing.T) {
	ctx := context.Background()

	newCart := func(t *testing.T) *order.Order {
		o, err := order.NewActiveOrder(7, 3, testPrice("20.00"), 2)
		require.NoError(t, err)
		o.ID = 42
		return o
	}

	t.Run("adding the same product accumulates the total but keeps one line item", func(t *testing.T) {
		f := newManagerFixture()
		f.products.WithProduct(3, "20.00")
		f.orders.On("FindByID", ctx, int64(42)).Return(newCart(t), nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		resp, err := f.manager.AddProduct(ctx, 42, 7, OrderProductRequest{ProductID: 3, Quantity: 1})

		require.NoError(t, err)
		assert.Equal(t, 60.0, resp.TotalPrice)
		assert.Equal(t, []int64{3}, resp.ProductIDs)
		assert.Equal(t, []string{order.EventTypeProductAdded}, f.publisher.Types())
		f.orders.AssertExpectations(t)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newManagerFixture()
		f.orders.On("FindByID", ctx, int64(42)).Return(nil, shared.NewNotFoundError("Order", 42))

		_, err := f.manager.AddProduct(ctx, 42, 7, OrderProductRequest{ProductID: 3, Quantity: 1})

		assert.Equal(t, shared.CodeOrderNotFound, codeOf(t, err))
	})

	t.Run("another user's order is forbidden", func(t *testing.T) {
		f := newManagerFixture()
		f.orders.On("FindByID", ctx, int64(42)).Return(newCart(t), nil)

		_, err := f.manager.AddProduct(ctx, 42, 8, OrderProductRequest{ProductID: 3, Quantity: 1})

		assert.Equal(t, shared.CodeForbidden, codeOf(t, err))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.products.AssertNotCalled(t, "ProductExists", mock.Anything, mock.Anything)
	})

	t.Run("inactive order is a conflict", func(t *testing.T) {
		f := newManagerFixture()
		cart := newCart(t)
		cart.Active = false
		f.orders.On("FindByID", ctx, int64(42)).Return(cart, nil)

		_, err := f.manager.AddProduct(ctx, 42, 7, OrderProductRequest{ProductID: 3, Quantity: 1})

		assert.Equal(t, shared.CodeOrderNotActive, codeOf(t, err))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newManagerFixture()
		f.products.WithoutProduct(9)
		f.orders.On("FindByID", ctx, int64(42)).Return(newCart(t), nil)

		_, err := f.manager.AddProduct(ctx, 42, 7, OrderProductRequest{ProductID: 9, Quantity: 1})

		assert.Equal(t, shared.CodeProductNotFound, codeOf(t, err))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestActiveOrderManager_GetActiveOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the active order", func(t *testing.T) {
		f := newManagerFixture()
		o, err := order.NewActiveOrder(7, 3, testPrice("5"), 1)
		require.NoError(t, err)
		f.orders.On("FindActiveByUserID", ctx, int64(7)).Return(o, nil)

		resp, err := f.manager.GetActiveOrder(ctx, 7)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.Active)
	})

	t.Run("returns nil when the user has no cart", func(t *testing.T) {
		f := newManagerFixture()
		f.orders.On("FindActiveByUserID", ctx, int64(7)).Return(nil, shared.NewNotFoundError("Order", 0))

		resp, err := f.manager.GetActiveOrder(ctx, 7)

		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		f := newManagerFixture()
		f.orders.On("FindActiveByUserID", ctx, int64(7)).Return(nil, errors.New("connection reset"))

		_, err := f.manager.GetActiveOrder(ctx, 7)

		assert.EqualError(t, err, "connection reset")
	})
}
