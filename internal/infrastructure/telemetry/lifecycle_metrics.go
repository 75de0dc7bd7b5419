package telemetry

import (
	"context"

	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// LifecycleMeterName is the instrumentation scope of the lifecycle metrics
const LifecycleMeterName = "tshirtshop/lifecycle"

// LifecycleMetrics turns order and fulfillment events into counters. It is
// subscribed to the event bus like any other handler.
type LifecycleMetrics struct {
	cartsCreated     *Counter
	productsAdded    *Counter
	ordersPlaced     *Counter
	orderValue       *Histogram
	fulfillments     *Counter
	stateTransitions *Counter
}

// NewLifecycleMetrics registers the lifecycle instruments on meter
func NewLifecycleMetrics(meter metric.Meter) (*LifecycleMetrics, error) {
	m := &LifecycleMetrics{}
	var err error

	if m.cartsCreated, err = NewCounter(meter, "shop.carts.created", "Active orders created", "{cart}"); err != nil {
		return nil, err
	}
	if m.productsAdded, err = NewCounter(meter, "shop.cart.products_added", "Products added to carts", "{product}"); err != nil {
		return nil, err
	}
	if m.ordersPlaced, err = NewCounter(meter, "shop.orders.placed", "Orders checked out", "{order}"); err != nil {
		return nil, err
	}
	if m.orderValue, err = NewHistogram(meter, "shop.orders.value", "Total price of placed orders", "1", OrderValueBuckets...); err != nil {
		return nil, err
	}
	if m.fulfillments, err = NewCounter(meter, "shop.fulfillments.created", "Fulfillment records created", "{record}"); err != nil {
		return nil, err
	}
	if m.stateTransitions, err = NewCounter(meter, "shop.fulfillments.transitions", "Accepted fulfillment state transitions", "{transition}"); err != nil {
		return nil, err
	}

	return m, nil
}

// Handle implements shared.EventHandler
func (m *LifecycleMetrics) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch e := evt.(type) {
	case *order.ActiveOrderCreatedEvent:
		m.cartsCreated.Inc(ctx)
		m.productsAdded.Inc(ctx)
	case *order.ProductAddedEvent:
		m.productsAdded.Inc(ctx)
	case *order.OrderPlacedEvent:
		m.ordersPlaced.Inc(ctx)
		m.orderValue.Record(ctx, e.TotalPrice.InexactFloat64())
	case *fulfillment.OrderedCreatedEvent:
		m.fulfillments.Inc(ctx, AttrState.String(string(fulfillment.StatePending)))
	case *fulfillment.OrderedStateChangedEvent:
		m.stateTransitions.Inc(ctx,
			AttrFromState.String(string(e.FromState)),
			AttrState.String(string(e.ToState)),
		)
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (m *LifecycleMetrics) EventTypes() []string {
	return []string{
		order.EventTypeActiveOrderCreated,
		order.EventTypeProductAdded,
		order.EventTypeOrderPlaced,
		fulfillment.EventTypeOrderedCreated,
		fulfillment.EventTypeOrderedStateChanged,
	}
}

var _ shared.EventHandler = (*LifecycleMetrics)(nil)

