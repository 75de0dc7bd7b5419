package fulfillment

import (
	"context"
	"time"

	"github.com/tshirtshop/backend/internal/domain/shared"
)

// Repository defines persistence operations for fulfillment records
type Repository interface {
	// FindByID finds a record by ID; returns ORDERED_NOT_FOUND when absent
	FindByID(ctx context.Context, id int64) (*Ordered, error)


	// FindAll lists every record
	FindAll(ctx context.Context, filter shared.Filter) ([]*Ordered, error)

	// FindByUserID lists records placed by a user
	FindByUserID(ctx context.Context, userID int64, filter shared.Filter) ([]*Ordered, error)

	// FindByDate lists records placed on an exact calendar date
	FindByDate(ctx context.Context, date time.Time, filter shared.Filter) ([]*Ordered, error)

	// FindByState lists records in a state
	FindByState(ctx context.Context, state State, filter shared.Filter) ([]*Ordered, error)

	// CountByState counts records in a state
	CountByState(ctx context.Context, state State) (int64, error)

	// ExistsByOrderID checks whether an order already has a record
	ExistsByOrderID(ctx context.Context, orderID int64) (bool, error)

	// Save inserts a new record or updates an existing one
	Save(ctx context.Context, o *Ordered) error

	// SaveWithLock updates a record under an optimistic version check
	SaveWithLock(ctx context.Context, o *Ordered) error

	// Delete removes a record by ID
	Delete(ctx context.Context, id int64) error
}
