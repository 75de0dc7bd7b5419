package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	Logger *zap.Logger
}

// RequireRole allows the request through only when the caller holds one of the roles
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig is RequireRole with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetJWTUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		role := GetJWTRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		if cfg.Logger != nil {
			userID, _ := GetJWTUserID(c)
			cfg.Logger.Warn("Role check failed",
				zap.Int64("user_id", userID),
				zap.String("role", role.String()),
				zap.String("path", c.Request.URL.Path),
			)
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role for this operation", GetRequestID(c)))
	}
}

// RequireAdmin restricts a route to ADMIN callers
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}
