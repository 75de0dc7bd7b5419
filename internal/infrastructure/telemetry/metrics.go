package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/tshirtshop/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const (
	defaultExportInterval = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Attribute keys shared by lifecycle spans and metrics
var (
	AttrUserID    = attribute.Key("user_id")
	AttrOrderID   = attribute.Key("order_id")
	AttrOrderedID = attribute.Key("ordered_id")
	AttrProductID = attribute.Key("product_id")
	AttrState     = attribute.Key("state")
	AttrFromState = attribute.Key("from_state")
)

// OrderValueBuckets are histogram boundaries for placed order totals
var OrderValueBuckets = []float64{10, 25, 50, 100, 250, 500, 1000}

// MeterProvider owns the SDK meter provider. A zero provider means metrics
// are off and Meter hands out the global no-op meter.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider exports metrics periodically over OTLP/gRPC and installs
// the provider globally
func NewMeterProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	if !cfg.Enabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return &MeterProvider{logger: logger}, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}
	res, err := serviceResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	logger.Info("Metrics exporting",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("interval", interval),
	)
	return &MeterProvider{provider: provider, logger: logger}, nil
}

// NewMeterProviderWithReader builds a provider over reader without touching
// the global provider. Tests pass sdkmetric.NewManualReader.
func NewMeterProviderWithReader(reader sdkmetric.Reader, logger *zap.Logger) *MeterProvider {
	return &MeterProvider{
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		logger:   logger,
	}
}

func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

func (mp *MeterProvider) IsEnabled() bool {
	return mp.provider != nil
}

// Shutdown flushes the last collection and stops the reader
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return shutdown(ctx, "meter", mp.provider.Shutdown, mp.logger)
}

// shutdown runs stop with a bounded deadline and logs failures
func shutdown(ctx context.Context, kind string, stop func(context.Context) error, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := stop(ctx); err != nil {
		logger.Error("Telemetry provider shutdown failed", zap.String("provider", kind), zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", kind, err)
	}
	return nil
}

// Counter counts occurrences
type Counter struct {
	inst metric.Int64Counter
}

func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	inst, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", name, err)
	}
	return &Counter{inst: inst}, nil
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.inst.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram records a distribution. Boundaries are optional.
type Histogram struct {
	inst metric.Float64Histogram
}

func NewHistogram(meter metric.Meter, name, description, unit string, boundaries ...float64) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(boundaries) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(boundaries...))
	}
	inst, err := meter.Float64Histogram(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", name, err)
	}
	return &Histogram{inst: inst}, nil
}

func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.inst.Record(ctx, value, metric.WithAttributes(attrs...))
}
