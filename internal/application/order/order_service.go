package order

import (
	"context"
	"fmt"

	"github.com/tshirtshop/backend/internal/domain/catalog"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

// PlacementChecker reports whether an order already has a fulfillment record
type PlacementChecker interface {
	ExistsByOrderID(ctx context.Context, orderID int64) (bool, error)
}

// OrderService handles plain order CRUD and list queries
type OrderService struct {
	orderRepo  order.Repository
	products   catalog.Lookup
	users      identity.Lookup
	placements PlacementChecker
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, products catalog.Lookup, users identity.Lookup, placements PlacementChecker) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		products:   products,
		users:      users,
		placements: placements,
	}
}

// Create creates an active order from an explicit product list.
// Like the cart path, it retires any other active order of the user.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if err := requireUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	products, err := resolveProducts(ctx, s.products, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(req.UserID, products, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.CreateActive(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// Update fully replaces an order and recomputes its total from the products' prices
func (s *OrderService) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	products, err := resolveProducts(ctx, s.products, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	if err := o.Replace(req.UserID, products, req.Address, req.Active); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// Delete removes an order. An order that has been placed cannot be deleted.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	exists, err := s.orderRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError("Order", id)
	}

	placed, err := s.placements.ExistsByOrderID(ctx, id)
	if err != nil {
		return err
	}
	if placed {
		return shared.NewDomainError(shared.CodeOrderHasFulfillment,
			fmt.Sprintf("Order %d has a fulfillment record and cannot be deleted", id))
	}

	return s.orderRepo.Delete(ctx, id)
}

// GetByID returns an order the viewer may see: their own, or any for an admin
func (s *OrderService) GetByID(ctx context.Context, id int64, viewer Viewer) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Admin && !o.IsOwnedBy(viewer.UserID) {
		return nil, shared.NewDomainError(shared.CodeForbidden,
			fmt.Sprintf("Order %d does not belong to user %d", id, viewer.UserID))
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves all orders
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListByUser retrieves the orders owned by a user. Only that user or an
// admin may list them.
func (s *OrderService) ListByUser(ctx context.Context, userID int64, viewer Viewer, filter shared.Filter) ([]OrderResponse, error) {
	if !viewer.CanActFor(userID) {
		return nil, shared.NewDomainError(shared.CodeForbidden,
			fmt.Sprintf("User %d cannot list orders of user %d", viewer.UserID, userID))
	}
	orders, err := s.orderRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListActive retrieves every active order
func (s *OrderService) ListActive(ctx context.Context, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByActive(ctx, true, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}
