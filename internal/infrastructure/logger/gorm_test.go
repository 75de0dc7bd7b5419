package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func traceQuery(l *GormLogger, ctx context.Context, elapsed time.Duration, err error) {
	l.Trace(ctx, time.Now().Add(-elapsed), func() (string, int64) {
		return "SELECT * FROM orders", 1
	}, err)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("logs errors", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn, 200*time.Millisecond)

		traceQuery(l, context.Background(), time.Millisecond, errors.New("connection reset"))

		assert.Equal(t, 1, recorded.FilterMessage("SQL Error").Len())
	})

	t.Run("skips record not found", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn, 200*time.Millisecond)

		traceQuery(l, context.Background(), time.Millisecond, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("warns on slow queries with request id", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn, 10*time.Millisecond)
		ctx := WithRequestID(context.Background(), "req-1")

		traceQuery(l, ctx, 50*time.Millisecond, nil)

		entries := recorded.All()
		assert.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn, 0).LogMode(gormlogger.Silent).(*GormLogger)

		traceQuery(l, context.Background(), time.Second, errors.New("x"))

		assert.Equal(t, 0, recorded.Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
}

func TestGormLogger_DebugStatementsCarryCaller(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Info, time.Second)
	ctx := WithUserID(WithRequestID(context.Background(), "req-2"), 42)

	traceQuery(l, ctx, time.Millisecond, nil)

	entries := recorded.FilterMessage("SQL Query").All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT * FROM orders", fields["sql"])
	assert.Equal(t, int64(42), fields["user_id"])
	assert.Equal(t, "req-2", fields["request_id"])
}
