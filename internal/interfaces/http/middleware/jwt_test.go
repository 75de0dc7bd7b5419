package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/infrastructure/auth"
	"github.com/tshirtshop/backend/internal/infrastructure/config"
	"github.com/tshirtshop/backend/internal/infrastructure/logger"
	"github.com/tshirtshop/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		Issuer:                "test-issuer",
		AccessTokenExpiration: ttl,
	})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	token, err := jwtService.GenerateToken(42, identity.RoleAdmin)
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		userID, ok := GetJWTUserID(c)
		assert.True(t, ok)
		assert.Equal(t, int64(42), userID)
		assert.Equal(t, identity.RoleAdmin, GetJWTRole(c))
		assert.NotNil(t, GetJWTClaims(c))

		ctxUserID, ok := logger.GetUserID(c.Request.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(42), ctxUserID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	expired, err := newTestJWTService(-time.Minute).GenerateToken(1, identity.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", dto.ErrCodeUnauthorized},
		{"empty bearer", "Bearer ", dto.ErrCodeUnauthorized},
		{"garbage token", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"expired token", "Bearer " + expired.Token, dto.ErrCodeTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), JWTAuthMiddleware(jwtService))
			router.GET("/test", func(c *gin.Context) {
				t.Fatal("handler must not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			errInfo := decodeError(t, w)
			assert.Equal(t, tt.wantCode, errInfo.Code)
			assert.NotEmpty(t, errInfo.RequestID)
		})
	}
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		Validator: newTestJWTService(time.Minute),
		SkipPaths: []string{"/api/v1/auth/login"},
	}))
	router.POST("/api/v1/auth/login", func(c *gin.Context) {
		_, ok := GetJWTUserID(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService(time.Minute)
	userToken, err := jwtService.GenerateToken(7, identity.RoleUser)
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateToken(8, identity.RoleAdmin)
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("user is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+userToken.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, w).Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+adminToken.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole_WithoutAuthentication(t *testing.T) {
	router := gin.New()
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
