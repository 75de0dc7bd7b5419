package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithRequestID(ctx, "req-9")
	ctx = WithUserID(ctx, 42)

	FromContext(ctx).Info("hello")

	assert.Equal(t, "req-9", GetRequestID(ctx))
	userID, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, int64(42), fields["user_id"])
}

func TestL_AddsTraceCorrelation(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	ctx := WithContext(context.Background(), zap.New(core))
	ctx = trace.ContextWithSpanContext(ctx, spanCtx)

	L(ctx).Info("traced")

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("unknown"))
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug", Format: "json", Output: "stderr"})
	assert.NoError(t, err)
	assert.NotNil(t, l)

	_, err = New(Config{Output: "/nonexistent-dir/app.log"})
	assert.Error(t, err)
}
