package testutil

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID int64, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByActive(ctx context.Context, active bool, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, active, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindActiveByUserID(ctx context.Context, userID int64) (*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateActive(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ order.Repository = (*MockOrderRepository)(nil)

// MockOrderedRepository is a mock implementation of fulfillment.Repository
type MockOrderedRepository struct {
	mock.Mock
}

func (m *MockOrderedRepository) FindByID(ctx context.Context, id int64) (*fulfillment.Ordered, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Ordered), args.Error(1)
}


func (m *MockOrderedRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Ordered), args.Error(1)
}

func (m *MockOrderedRepository) FindByUserID(ctx context.Context, userID int64, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Ordered), args.Error(1)
}

func (m *MockOrderedRepository) FindByDate(ctx context.Context, date time.Time, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	args := m.Called(ctx, date, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Ordered), args.Error(1)
}

func (m *MockOrderedRepository) FindByState(ctx context.Context, state fulfillment.State, filter shared.Filter) ([]*fulfillment.Ordered, error) {
	args := m.Called(ctx, state, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Ordered), args.Error(1)
}

func (m *MockOrderedRepository) CountByState(ctx context.Context, state fulfillment.State) (int64, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderedRepository) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderedRepository) Save(ctx context.Context, o *fulfillment.Ordered) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderedRepository) SaveWithLock(ctx context.Context, o *fulfillment.Ordered) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderedRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ fulfillment.Repository = (*MockOrderedRepository)(nil)

// MockCatalogLookup is a mock implementation of catalog.Lookup
type MockCatalogLookup struct {
	mock.Mock
}

func (m *MockCatalogLookup) ProductExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogLookup) GetPrice(ctx context.Context, id int64) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// WithProduct registers an existing product with its price
func (m *MockCatalogLookup) WithProduct(id int64, price string) *MockCatalogLookup {
	m.On("ProductExists", mock.Anything, id).Return(true, nil).Maybe()
	m.On("GetPrice", mock.Anything, id).Return(decimal.RequireFromString(price), nil).Maybe()
	return m
}

// WithoutProduct registers a product id that does not exist
func (m *MockCatalogLookup) WithoutProduct(id int64) *MockCatalogLookup {
	m.On("ProductExists", mock.Anything, id).Return(false, nil).Maybe()
	return m
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetRole(ctx context.Context, id int64) (identity.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(identity.Role), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// WithUser registers an existing user
func (m *MockUserRepository) WithUser(id int64) *MockUserRepository {
	m.On("UserExists", mock.Anything, id).Return(true, nil).Maybe()
	return m
}

// WithoutUser registers a user id that does not exist
func (m *MockUserRepository) WithoutUser(id int64) *MockUserRepository {
	m.On("UserExists", mock.Anything, id).Return(false, nil).Maybe()
	return m
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

// PassthroughTransactor runs the function directly with the given context
type PassthroughTransactor struct {
	Calls int
}

// WithinTransaction implements shared.Transactor
func (t *PassthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

var _ shared.Transactor = (*PassthroughTransactor)(nil)
