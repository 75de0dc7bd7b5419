package order

import (
	"time"

	"github.com/tshirtshop/backend/internal/domain/order"
)

// OrderProductRequest carries a product and quantity for the cart operations.
// A non-positive quantity counts as 1.
type OrderProductRequest struct {
	ProductID int64
	Quantity  int
}

// Viewer is the authenticated caller of a read
type Viewer struct {
	UserID int64
	Admin  bool
}

// CanActFor reports whether the viewer may see userID's orders
func (v Viewer) CanActFor(userID int64) bool {
	return v.Admin || v.UserID == userID
}

// CreateOrderRequest represents an explicit order creation
type CreateOrderRequest struct {
	UserID     int64
	ProductIDs []int64
	Address    string
}

// UpdateOrderRequest represents a full replacement of an order
type UpdateOrderRequest struct {
	UserID     int64
	ProductIDs []int64
	Address    string
	Active     bool
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	ProductIDs []int64   `json:"productIds"`
	TotalPrice float64   `json:"totalPrice"`
	Address    string    `json:"address"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	productIDs := make([]int64, len(o.ProductIDs))
	copy(productIDs, o.ProductIDs)
	return OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		ProductIDs: productIDs,
		TotalPrice: o.TotalPrice.InexactFloat64(),
		Address:    o.Address,
		Active:     o.Active,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses
}
