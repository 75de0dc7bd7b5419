package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

// OrderChecker reports whether an order exists
type OrderChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Tracker owns fulfillment records and drives their state machine
type Tracker struct {
	repo           fulfillment.Repository
	orders         OrderChecker
	users          identity.Lookup
	now            func() time.Time
	eventPublisher shared.EventPublisher
}

// NewTracker creates a new Tracker
func NewTracker(repo fulfillment.Repository, orders OrderChecker, users identity.Lookup) *Tracker {
	return &Tracker{
		repo:   repo,
		orders: orders,
		users:  users,
		now:    time.Now,
	}
}

// SetEventPublisher sets the event publisher
func (t *Tracker) SetEventPublisher(publisher shared.EventPublisher) {
	t.eventPublisher = publisher
}

// SetClock overrides the clock used for "today"
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Create records the placement of an order. The record is always dated today
// and starts in PENDING, whatever date or state the caller sent.
func (t *Tracker) Create(ctx context.Context, req CreateOrderedRequest) (*OrderedResponse, error) {
	if err := t.requireOrder(ctx, req.OrderID); err != nil {
		return nil, err
	}
	if err := t.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	if err := t.requireUnplaced(ctx, req.OrderID); err != nil {
		return nil, err
	}

	o, err := fulfillment.NewOrdered(req.OrderID, req.UserID, t.now())
	if err != nil {
		return nil, err
	}

	if err := t.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	publish(ctx, t.eventPublisher, fulfillment.NewOrderedCreatedEvent(o))

	response := ToOrderedResponse(o)
	return &response, nil
}

// Update fully replaces a fulfillment record. It bypasses the transition
// table and exists for administrative corrections.
func (t *Tracker) Update(ctx context.Context, id int64, req UpdateOrderedRequest) (*OrderedResponse, error) {
	o, err := t.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	state, err := fulfillment.ParseState(req.State)
	if err != nil {
		return nil, err
	}
	if err := t.requireOrder(ctx, req.OrderID); err != nil {
		return nil, err
	}
	if err := t.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}
	if req.OrderID != o.OrderID {
		if err := t.requireUnplaced(ctx, req.OrderID); err != nil {
			return nil, err
		}
	}

	date := o.Date
	if req.Date != nil {
		date = *req.Date
	}
	if err := o.Replace(req.OrderID, req.UserID, date, state, t.now()); err != nil {
		return nil, err
	}

	if err := t.repo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderedResponse(o)
	return &response, nil
}

// Delete removes a fulfillment record
func (t *Tracker) Delete(ctx context.Context, id int64) error {
	if _, err := t.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return t.repo.Delete(ctx, id)
}

// TransitionState moves a record to a new state through the transition
// table. Rejected transitions leave the stored state unchanged. The
// underlying order's active flag is never touched.
func (t *Tracker) TransitionState(ctx context.Context, id int64, newState string) (*OrderedResponse, error) {
	o, err := t.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := fulfillment.ParseState(newState)
	if err != nil {
		return nil, err
	}

	from := o.State
	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := t.repo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	publish(ctx, t.eventPublisher, fulfillment.NewOrderedStateChangedEvent(o, from))

	response := ToOrderedResponse(o)
	return &response, nil
}

// GetByID retrieves a fulfillment record by ID
func (t *Tracker) GetByID(ctx context.Context, id int64) (*OrderedResponse, error) {
	o, err := t.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderedResponse(o)
	return &response, nil
}

// GetState returns the current state of a record
func (t *Tracker) GetState(ctx context.Context, id int64) (fulfillment.State, error) {
	o, err := t.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return o.State, nil
}

// IsDelivered reports whether a record is DELIVERED. A missing record is an
// error rather than false.
func (t *Tracker) IsDelivered(ctx context.Context, id int64) (bool, error) {
	o, err := t.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return o.IsDelivered(), nil
}

// List retrieves every fulfillment record
func (t *Tracker) List(ctx context.Context, filter shared.Filter) ([]OrderedResponse, error) {
	records, err := t.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderedResponses(records), nil
}

// ListByUser retrieves the records placed by an existing user
func (t *Tracker) ListByUser(ctx context.Context, userID int64, filter shared.Filter) ([]OrderedResponse, error) {
	if err := t.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	records, err := t.repo.FindByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderedResponses(records), nil
}

// ListByDate retrieves the records placed on an exact date
func (t *Tracker) ListByDate(ctx context.Context, date time.Time, filter shared.Filter) ([]OrderedResponse, error) {
	records, err := t.repo.FindByDate(ctx, fulfillment.DateOf(date), filter)
	if err != nil {
		return nil, err
	}
	return ToOrderedResponses(records), nil
}

// ListToday retrieves the records placed today
func (t *Tracker) ListToday(ctx context.Context, filter shared.Filter) ([]OrderedResponse, error) {
	return t.ListByDate(ctx, t.now(), filter)
}

// ListByState retrieves the records in a state
func (t *Tracker) ListByState(ctx context.Context, state string, filter shared.Filter) ([]OrderedResponse, error) {
	st, err := fulfillment.ParseState(state)
	if err != nil {
		return nil, err
	}
	records, err := t.repo.FindByState(ctx, st, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderedResponses(records), nil
}

// CountByState counts the records in a state
func (t *Tracker) CountByState(ctx context.Context, state string) (*StateCountResponse, error) {
	st, err := fulfillment.ParseState(state)
	if err != nil {
		return nil, err
	}
	count, err := t.repo.CountByState(ctx, st)
	if err != nil {
		return nil, err
	}
	return &StateCountResponse{State: st.String(), Count: count}, nil
}

func (t *Tracker) requireOrder(ctx context.Context, orderID int64) error {
	exists, err := t.orders.ExistsByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError("Order", orderID)
	}
	return nil
}

func (t *Tracker) requireUser(ctx context.Context, userID int64) error {
	exists, err := t.users.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError("User", userID)
	}
	return nil
}

func (t *Tracker) requireUnplaced(ctx context.Context, orderID int64) error {
	placed, err := t.repo.ExistsByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if placed {
		return shared.NewDomainError(shared.CodeOrderAlreadyPlaced,
			fmt.Sprintf("Order %d already has a fulfillment record", orderID))
	}
	return nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, events ...shared.DomainEvent) {
	if publisher == nil {
		return
	}
	_ = publisher.Publish(ctx, events...)
}
