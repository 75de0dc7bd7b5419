package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	SlowQueryThresh time.Duration
	DBName          string
	// WithVariables includes bound query values in spans. Development only.
	WithVariables bool
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin on db plus callbacks that
// flag slow statements and record errors on the active span
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	// Registered ahead of otelgorm so the after hooks run while its span is still open
	if err := registerTimingCallbacks(db, slowQueryCallback(cfg.SlowQueryThresh)); err != nil {
		return err
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.WithVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_name", cfg.DBName),
	)
	return nil
}

func registerTimingCallbacks(db *gorm.DB, after func(*gorm.DB)) error {
	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("shop_timing:before_create", markQueryStart) },
		func() error { return cb.Query().Before("gorm:query").Register("shop_timing:before_query", markQueryStart) },
		func() error { return cb.Update().Before("gorm:update").Register("shop_timing:before_update", markQueryStart) },
		func() error { return cb.Delete().Before("gorm:delete").Register("shop_timing:before_delete", markQueryStart) },
		func() error { return cb.Row().Before("gorm:row").Register("shop_timing:before_row", markQueryStart) },
		func() error { return cb.Raw().Before("gorm:raw").Register("shop_timing:before_raw", markQueryStart) },
		func() error { return cb.Create().After("gorm:create").Register("shop_slow_query:create", after) },
		func() error { return cb.Query().After("gorm:query").Register("shop_slow_query:query", after) },
		func() error { return cb.Update().After("gorm:update").Register("shop_slow_query:update", after) },
		func() error { return cb.Delete().After("gorm:delete").Register("shop_slow_query:delete", after) },
		func() error { return cb.Row().After("gorm:row").Register("shop_slow_query:row", after) },
		func() error { return cb.Raw().After("gorm:raw").Register("shop_slow_query:raw", after) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func slowQueryCallback(threshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}

		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
			if elapsed := time.Since(start); elapsed > threshold {
				span.SetAttributes(
					attribute.Bool("db.slow_query", true),
					attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
				)
			}
		}
	}
}
