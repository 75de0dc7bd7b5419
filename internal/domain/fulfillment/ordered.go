package fulfillment

import (
	"fmt"
	"time"

	"github.com/tshirtshop/backend/internal/domain/shared"
)

// AggregateTypeOrdered is the aggregate type name used in domain events
const AggregateTypeOrdered = "Ordered"

// DateLayout is the calendar-date format used at the API boundary
const DateLayout = "2006-01-02"

// Ordered is the fulfillment record of a placed order, one-to-one with an Order.
// UserID is stored alongside the order's owner and is not kept in sync if the
// order is reassigned later.
type Ordered struct {
	shared.BaseAggregateRoot
	OrderID int64
	UserID  int64
	Date    time.Time
	State   State
}

// DateOf truncates t to its calendar date in UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, shared.NewDomainError(shared.CodeInvalidInput,
			fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// NewOrdered creates a fulfillment record dated today and in PENDING state
func NewOrdered(orderID, userID int64, today time.Time) (*Ordered, error) {
	if orderID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order ID is required")
	}
	if userID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "User ID is required")
	}
	return &Ordered{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		UserID:            userID,
		Date:              DateOf(today),
		State:             StatePending,
	}, nil
}

// TransitionTo moves the record to target if the transition table allows it.
// On rejection the state is left unchanged.
func (o *Ordered) TransitionTo(target State) error {
	if !target.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Invalid state: %q", target))
	}
	if !o.State.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidTransition,
			fmt.Sprintf("Invalid state transition from %s to %s", o.State, target))
	}
	o.State = target
	o.Touch()
	return nil
}

// Replace overwrites order, user, date and state. It is the administrative
// correction path and bypasses the transition table, but not the date rule.
func (o *Ordered) Replace(orderID, userID int64, date time.Time, state State, today time.Time) error {
	if orderID <= 0 || userID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Order ID and User ID are required")
	}
	if !state.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Invalid state: %q", state))
	}
	d := DateOf(date)
	if d.After(DateOf(today)) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Date must be in the past or present")
	}
	o.OrderID = orderID
	o.UserID = userID
	o.Date = d
	o.State = state
	o.Touch()
	return nil
}

// IsDelivered reports whether the state is exactly DELIVERED
func (o *Ordered) IsDelivered() bool {
	return o.State == StateDelivered
}
