package event

import (
	"context"

	"github.com/tshirtshop/backend/internal/domain/shared"
	"github.com/tshirtshop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured log line per lifecycle event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a handler that logs under the "audit" name
func NewAuditLogHandler(log *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: log.Named("audit")}
}

// Handle implements shared.EventHandler
func (h *AuditLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.Int64("aggregate_id", evt.AggregateID()),
		zap.Time("occurred_at", evt.OccurredAt()),
	}
	if id := logger.GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if userID, ok := logger.GetUserID(ctx); ok {
		fields = append(fields, zap.Int64("user_id", userID))
	}
	h.logger.Info("domain event", fields...)
	return nil
}

// EventTypes returns nil so the handler receives every event
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}
