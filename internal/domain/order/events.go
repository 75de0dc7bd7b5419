package order

import (
	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

// Event types
const (
	EventTypeActiveOrderCreated = "order.active_created"
	EventTypeProductAdded       = "order.product_added"
	EventTypeOrderPlaced        = "order.placed"
)

// ActiveOrderCreatedEvent is published when a new cart replaces the user's previous ones
type ActiveOrderCreatedEvent struct {
	shared.BaseDomainEvent
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewActiveOrderCreatedEvent creates the event for a persisted active order
func NewActiveOrderCreatedEvent(o *Order, productID int64, quantity int) *ActiveOrderCreatedEvent {
	return &ActiveOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActiveOrderCreated, AggregateTypeOrder, o.ID),
		UserID:          o.UserID,
		ProductID:       productID,
		Quantity:        NormalizeQuantity(quantity),
		TotalPrice:      o.TotalPrice,
	}
}

// ProductAddedEvent is published after a product is added to an active cart
type ProductAddedEvent struct {
	shared.BaseDomainEvent
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewProductAddedEvent creates the event for a cart extension
func NewProductAddedEvent(o *Order, productID int64, quantity int) *ProductAddedEvent {
	return &ProductAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductAdded, AggregateTypeOrder, o.ID),
		UserID:          o.UserID,
		ProductID:       productID,
		Quantity:        NormalizeQuantity(quantity),
		TotalPrice:      o.TotalPrice,
	}
}

// OrderPlacedEvent is published when a cart is checked out into a fulfillment record
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	UserID     int64           `json:"user_id"`
	OrderedID  int64           `json:"ordered_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewOrderPlacedEvent creates the event for a placed order
func NewOrderPlacedEvent(o *Order, orderedID int64) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		UserID:          o.UserID,
		OrderedID:       orderedID,
		TotalPrice:      o.TotalPrice,
	}
}
