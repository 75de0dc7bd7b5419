package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		Issuer:                "test-issuer",
		AccessTokenExpiration: 15 * time.Minute,
	})
}

func TestNewJWTService(t *testing.T) {
	svc := newTestJWTService()

	assert.Equal(t, []byte("test-secret-key-at-least-32-chars"), svc.secret)
	assert.Equal(t, 15*time.Minute, svc.Expiration())
	assert.Equal(t, "test-issuer", svc.issuer)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()

	issued, err := svc.GenerateToken(42, identity.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.True(t, issued.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, identity.RoleAdmin, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.GetRemainingTTL(), 14*time.Minute)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	issued, err := svc.GenerateToken(1, identity.RoleUser)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_NotYetValid(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }

	issued, err := svc.GenerateToken(1, identity.RoleUser)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issued, err := newTestJWTService().GenerateToken(1, identity.RoleUser)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		Issuer:                "test-issuer",
		AccessTokenExpiration: 15 * time.Minute,
	})

	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	issued, err := newTestJWTService().GenerateToken(1, identity.RoleUser)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		Issuer:                "someone-else",
		AccessTokenExpiration: 15 * time.Minute,
	})

	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
		Role:   identity.RoleAdmin,
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_MissingClaims(t *testing.T) {
	svc := newTestJWTService()
	sign := func(c *Claims) string {
		c.Issuer = "test-issuer"
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(svc.secret)
		require.NoError(t, err)
		return s
	}

	_, err := svc.ValidateToken(sign(&Claims{Role: identity.RoleUser}))
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = svc.ValidateToken(sign(&Claims{UserID: 1, Role: "ROOT"}))
	assert.ErrorIs(t, err, ErrInvalidRole)
}
