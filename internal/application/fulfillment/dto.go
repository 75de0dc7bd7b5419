package fulfillment

import (
	"time"

	"github.com/tshirtshop/backend/internal/domain/fulfillment"
)

// CreateOrderedRequest represents a request to place an order for fulfillment.
// Date and State are accepted for compatibility and ignored: a new record is
// always dated today and PENDING.
type CreateOrderedRequest struct {
	OrderID int64
	UserID  int64
	Date    *time.Time
	State   string
}

// UpdateOrderedRequest replaces every field of a fulfillment record.
// A nil Date keeps the recorded date.
type UpdateOrderedRequest struct {
	OrderID int64
	UserID  int64
	Date    *time.Time
	State   string
}

// OrderedResponse represents a fulfillment record in API responses
type OrderedResponse struct {
	ID      int64  `json:"id"`
	OrderID int64  `json:"orderId"`
	UserID  int64  `json:"userId"`
	Date    string `json:"date"`
	State   string `json:"state"`
}

// StateCountResponse is the number of records in a state
type StateCountResponse struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// ToOrderedResponse converts a domain Ordered to OrderedResponse
func ToOrderedResponse(o *fulfillment.Ordered) OrderedResponse {
	return OrderedResponse{
		ID:      o.ID,
		OrderID: o.OrderID,
		UserID:  o.UserID,
		Date:    o.Date.Format(fulfillment.DateLayout),
		State:   o.State.String(),
	}
}

// ToOrderedResponses converts a slice of domain Ordered records
func ToOrderedResponses(records []*fulfillment.Ordered) []OrderedResponse {
	responses := make([]OrderedResponse, len(records))
	for i, o := range records {
		responses[i] = ToOrderedResponse(o)
	}
	return responses
}
