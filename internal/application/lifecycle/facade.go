// Package lifecycle orchestrates the cart to order to fulfillment flow.
// It holds no state of its own; the HTTP layer calls it for every
// operation that crosses the order and fulfillment subsystems.
package lifecycle

import (
	"context"
	"time"

	fulfillmentapp "github.com/tshirtshop/backend/internal/application/fulfillment"
	orderapp "github.com/tshirtshop/backend/internal/application/order"
	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/infrastructure/telemetry"
)

// PlaceOrderRequest checks out an active cart
type PlaceOrderRequest struct {
	Address string
}

// PlacementResponse is the result of placing an order
type PlacementResponse struct {
	Order   orderapp.OrderResponse         `json:"order"`
	Ordered fulfillmentapp.OrderedResponse `json:"ordered"`
}

// Facade is the entry point for the order lifecycle
type Facade struct {
	carts          *orderapp.ActiveOrderManager
	tracker        *fulfillmentapp.Tracker
	orderRepo      order.Repository
	orderedRepo    fulfillment.Repository
	tx             shared.Transactor
	now            func() time.Time
	eventPublisher shared.EventPublisher
}

// NewFacade creates a new Facade
func NewFacade(
	carts *orderapp.ActiveOrderManager,
	tracker *fulfillmentapp.Tracker,
	orderRepo order.Repository,
	orderedRepo fulfillment.Repository,
	tx shared.Transactor,
) *Facade {
	return &Facade{
		carts:       carts,
		tracker:     tracker,
		orderRepo:   orderRepo,
		orderedRepo: orderedRepo,
		tx:          tx,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher
func (f *Facade) SetEventPublisher(publisher shared.EventPublisher) {
	f.eventPublisher = publisher
}

// SetClock overrides the clock used to date placements
func (f *Facade) SetClock(now func() time.Time) {
	f.now = now
}

// StartCart creates a fresh active order for the user, retiring any previous one
func (f *Facade) StartCart(ctx context.Context, userID int64, req orderapp.OrderProductRequest) (*orderapp.OrderResponse, error) {
	return f.carts.CreateActiveOrder(ctx, userID, req)
}

// AddToCart adds a product to one of the caller's active orders
func (f *Facade) AddToCart(ctx context.Context, orderID, userID int64, req orderapp.OrderProductRequest) (*orderapp.OrderResponse, error) {
	return f.carts.AddProduct(ctx, orderID, userID, req)
}

// AddToActiveCart extends the caller's active order, or starts one when
// the caller has none
func (f *Facade) AddToActiveCart(ctx context.Context, userID int64, req orderapp.OrderProductRequest) (*orderapp.OrderResponse, error) {
	active, err := f.carts.GetActiveOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return f.carts.CreateActiveOrder(ctx, userID, req)
	}
	return f.carts.AddProduct(ctx, active.ID, userID, req)
}

// ActiveCart returns the caller's active order, or nil
func (f *Facade) ActiveCart(ctx context.Context, userID int64) (*orderapp.OrderResponse, error) {
	return f.carts.GetActiveOrder(ctx, userID)
}

// PlaceOrder checks out the caller's active order and opens its fulfillment
// record in one transaction. The record's owner is taken from the order.
func (f *Facade) PlaceOrder(ctx context.Context, orderID, callerUserID int64, req PlaceOrderRequest) (resp *PlacementResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "place_order",
		telemetry.AttrOrderID.Int64(orderID),
		telemetry.AttrUserID.Int64(callerUserID),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	var (
		placed  *order.Order
		ordered *fulfillment.Ordered
	)

	err = f.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		o, err := f.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Checkout(callerUserID, req.Address); err != nil {
			return err
		}

		exists, err := f.orderedRepo.ExistsByOrderID(ctx, o.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeOrderAlreadyPlaced, "Order already has a fulfillment record")
		}

		rec, err := fulfillment.NewOrdered(o.ID, o.UserID, f.now())
		if err != nil {
			return err
		}

		if err := f.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := f.orderedRepo.Save(ctx, rec); err != nil {
			return err
		}

		placed, ordered = o, rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if f.eventPublisher != nil {
		_ = f.eventPublisher.Publish(ctx,
			order.NewOrderPlacedEvent(placed, ordered.ID),
			fulfillment.NewOrderedCreatedEvent(ordered),
		)
	}

	return &PlacementResponse{
		Order:   orderapp.ToOrderResponse(placed),
		Ordered: fulfillmentapp.ToOrderedResponse(ordered),
	}, nil
}

// AdvanceFulfillment moves a fulfillment record through the state machine
func (f *Facade) AdvanceFulfillment(ctx context.Context, orderedID int64, state string) (resp *fulfillmentapp.OrderedResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lifecycle", "advance_fulfillment",
		telemetry.AttrOrderedID.Int64(orderedID),
		telemetry.AttrState.String(state),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	return f.tracker.TransitionState(ctx, orderedID, state)
}
