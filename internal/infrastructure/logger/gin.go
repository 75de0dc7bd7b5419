package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey is the gin context key the RequestID middleware writes
const RequestIDKey = "request_id"

// GinMiddleware logs one "HTTP Request" line per request, at a level chosen
// from the response status. Handlers find a logger carrying the method, path
// and request id in the request context.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		ctx := WithContext(req.Context(), logger.With(
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		))
		if id := c.GetString(RequestIDKey); id != "" {
			ctx = WithRequestID(ctx, id)
		}
		c.Request = req.WithContext(ctx)
		reqLogger := FromContext(ctx)

		c.Next()

		status := c.Writer.Status()
		fields := append(make([]zap.Field, 0, 8),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		)
		if q := req.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if userID, ok := GetUserID(c.Request.Context()); ok {
			fields = append(fields, zap.Int64("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		if ce := reqLogger.Check(levelForStatus(status), "HTTP Request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Recovery converts a panic into the standard 500 envelope
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		requestID := c.GetString(RequestIDKey)
		logger.Error("Panic recovered",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("error", recovered),
			zap.Stack("stacktrace"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":       "ERR_INTERNAL",
				"message":    "An internal error occurred",
				"request_id": requestID,
			},
		})
	})
}
