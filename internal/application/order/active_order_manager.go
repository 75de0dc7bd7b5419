package order

import (
	"context"

	"github.com/tshirtshop/backend/internal/domain/catalog"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

// ActiveOrderManager owns the single-active-order-per-user rule and
// accumulates products into a user's cart
type ActiveOrderManager struct {
	orderRepo      order.Repository
	products       catalog.Lookup
	users          identity.Lookup
	eventPublisher shared.EventPublisher
}

// NewActiveOrderManager creates a new ActiveOrderManager
func NewActiveOrderManager(orderRepo order.Repository, products catalog.Lookup, users identity.Lookup) *ActiveOrderManager {
	return &ActiveOrderManager{
		orderRepo: orderRepo,
		products:  products,
		users:     users,
	}
}

// SetEventPublisher sets the event publisher
func (m *ActiveOrderManager) SetEventPublisher(publisher shared.EventPublisher) {
	m.eventPublisher = publisher
}

// CreateActiveOrder always creates a new active order holding the given
// product and retires every previously active order of the user. The
// deactivation and the insert run in one storage transaction.
func (m *ActiveOrderManager) CreateActiveOrder(ctx context.Context, userID int64, req OrderProductRequest) (*OrderResponse, error) {
	if err := requireUser(ctx, m.users, userID); err != nil {
		return nil, err
	}
	price, err := resolvePrice(ctx, m.products, req.ProductID)
	if err != nil {
		return nil, err
	}

	o, err := order.NewActiveOrder(userID, req.ProductID, price, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := m.orderRepo.CreateActive(ctx, o); err != nil {
		return nil, err
	}

	publish(ctx, m.eventPublisher, order.NewActiveOrderCreatedEvent(o, req.ProductID, req.Quantity))

	response := ToOrderResponse(o)
	return &response, nil
}

// AddProduct adds a product to an active order owned by the caller.
// The total accumulates price * quantity even for a product already in the order.
func (m *ActiveOrderManager) AddProduct(ctx context.Context, orderID, callerUserID int64, req OrderProductRequest) (*OrderResponse, error) {
	o, err := m.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.EnsureModifiableBy(callerUserID); err != nil {
		return nil, err
	}

	price, err := resolvePrice(ctx, m.products, req.ProductID)
	if err != nil {
		return nil, err
	}

	if err := o.AddProduct(callerUserID, req.ProductID, price, req.Quantity); err != nil {
		return nil, err
	}

	if err := m.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	publish(ctx, m.eventPublisher, order.NewProductAddedEvent(o, req.ProductID, req.Quantity))

	response := ToOrderResponse(o)
	return &response, nil
}

// GetActiveOrder returns the user's active order, or nil when the user has none
func (m *ActiveOrderManager) GetActiveOrder(ctx context.Context, userID int64) (*OrderResponse, error) {
	o, err := m.orderRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, events ...shared.DomainEvent) {
	if publisher == nil {
		return
	}
	// Handler failures are logged by the bus and never fail the request
	_ = publisher.Publish(ctx, events...)
}
