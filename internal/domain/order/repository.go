package order

import (
	"context"

	"github.com/tshirtshop/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	// FindByID finds an order by ID; returns ORDER_NOT_FOUND when absent
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindAll lists every order
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, error)

	// FindByUserID lists the orders owned by a user
	FindByUserID(ctx context.Context, userID int64, filter shared.Filter) ([]*Order, error)

	// FindByActive lists orders by their active flag
	FindByActive(ctx context.Context, active bool, filter shared.Filter) ([]*Order, error)

	// FindActiveByUserID returns the user's active order; ORDER_NOT_FOUND when there is none
	FindActiveByUserID(ctx context.Context, userID int64) (*Order, error)

	// CreateActive deactivates every active order of o.UserID and inserts o,
	// atomically. Returns ACTIVE_ORDER_CONFLICT if a concurrent writer won.
	CreateActive(ctx context.Context, o *Order) error

	// Save inserts a new order or updates an existing one
	Save(ctx context.Context, o *Order) error

	// Delete removes an order by ID
	Delete(ctx context.Context, id int64) error

	// ExistsByID checks whether an order exists
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
