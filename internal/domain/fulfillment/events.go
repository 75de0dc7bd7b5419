package fulfillment

import "github.com/tshirtshop/backend/internal/domain/shared"

// Event types
const (
	EventTypeOrderedCreated      = "fulfillment.created"
	EventTypeOrderedStateChanged = "fulfillment.state_changed"
)

// OrderedCreatedEvent is published when a fulfillment record is created
type OrderedCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`
}

// NewOrderedCreatedEvent creates the event for a persisted record
func NewOrderedCreatedEvent(o *Ordered) *OrderedCreatedEvent {
	return &OrderedCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderedCreated, AggregateTypeOrdered, o.ID),
		OrderID:         o.OrderID,
		UserID:          o.UserID,
	}
}

// OrderedStateChangedEvent is published after an accepted state transition
type OrderedStateChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   int64 `json:"order_id"`
	FromState State `json:"from_state"`
	ToState   State `json:"to_state"`
}

// NewOrderedStateChangedEvent creates the event for a transition
func NewOrderedStateChangedEvent(o *Ordered, from State) *OrderedStateChangedEvent {
	return &OrderedStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderedStateChanged, AggregateTypeOrdered, o.ID),
		OrderID:         o.OrderID,
		FromState:       from,
		ToState:         o.State,
	}
}
