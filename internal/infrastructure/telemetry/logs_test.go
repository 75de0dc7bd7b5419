package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/infrastructure/config"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *recordingLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *recordingLogExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingLogExporter) ForceFlush(context.Context) error { return nil }

func (e *recordingLogExporter) bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.records))
	for i, r := range e.records {
		out[i] = r.Body().AsString()
	}
	return out
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), config.TelemetryConfig{Enabled: true}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())

	base := zap.NewNop()
	assert.Same(t, base, lp.Bridge(base, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestLoggerProvider_Bridge(t *testing.T) {
	exporter := &recordingLogExporter{}
	lp := NewLoggerProviderWithExporter(exporter, "tshirtshop-test", zap.NewNop())
	require.True(t, lp.IsEnabled())

	core, recorded := observer.New(zapcore.DebugLevel)
	log := lp.Bridge(zap.New(core), zapcore.InfoLevel)

	log.Debug("cart inspected")
	log.Info("order placed", zap.Int64("order_id", 7))

	assert.Equal(t, 2, recorded.Len(), "local core still sees every entry")
	assert.Equal(t, []string{"order placed"}, exporter.bodies())
	assert.NoError(t, lp.Shutdown(context.Background()))
}
