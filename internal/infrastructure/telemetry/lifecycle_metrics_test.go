package telemetry

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/domain/order"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestLifecycleMetrics_Handle(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zap.NewNop())
	defer mp.Shutdown(ctx)

	m, err := NewLifecycleMetrics(mp.Meter(LifecycleMeterName))
	require.NoError(t, err)

	cart := &order.Order{UserID: 7, TotalPrice: decimal.NewFromInt(40)}
	cart.ID = 1
	rec := &fulfillment.Ordered{OrderID: 1, UserID: 7, State: fulfillment.StatePending}
	rec.ID = 3

	require.NoError(t, m.Handle(ctx, order.NewActiveOrderCreatedEvent(cart, 10, 1)))
	require.NoError(t, m.Handle(ctx, order.NewProductAddedEvent(cart, 11, 1)))
	require.NoError(t, m.Handle(ctx, order.NewOrderPlacedEvent(cart, rec.ID)))
	require.NoError(t, m.Handle(ctx, fulfillment.NewOrderedCreatedEvent(rec)))
	rec.State = fulfillment.StateShipped
	require.NoError(t, m.Handle(ctx, fulfillment.NewOrderedStateChangedEvent(rec, fulfillment.StatePending)))

	data := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, data["shop.carts.created"]))
	assert.Equal(t, int64(2), sumOf(t, data["shop.cart.products_added"]))
	assert.Equal(t, int64(1), sumOf(t, data["shop.orders.placed"]))
	assert.Equal(t, int64(1), sumOf(t, data["shop.fulfillments.created"]))

	transitions := data["shop.fulfillments.transitions"].(metricdata.Sum[int64])
	require.Len(t, transitions.DataPoints, 1)
	want := attribute.NewSet(AttrFromState.String("PENDING"), AttrState.String("SHIPPED"))
	assert.True(t, want.Equals(&transitions.DataPoints[0].Attributes))

	value := data["shop.orders.value"].(metricdata.Histogram[float64])
	require.Len(t, value.DataPoints, 1)
	assert.Equal(t, uint64(1), value.DataPoints[0].Count)
	assert.Equal(t, 40.0, value.DataPoints[0].Sum)
}

func TestLifecycleMetrics_EventTypes(t *testing.T) {
	m, err := NewLifecycleMetrics(NewMeterProviderWithReader(sdkmetric.NewManualReader(), zap.NewNop()).Meter("test"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"order.active_created",
		"order.product_added",
		"order.placed",
		"fulfillment.created",
		"fulfillment.state_changed",
	}, m.EventTypes())
}
