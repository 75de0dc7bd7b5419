package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	t.Run("hashes the password and normalizes email", func(t *testing.T) {
		u, err := NewUser("  Jane@Example.com ", "secret123", GenderFemale, RoleUser)
		require.NoError(t, err)

		assert.Equal(t, "jane@example.com", u.Email)
		assert.NotEqual(t, "secret123", u.PasswordHash)
		assert.True(t, u.VerifyPassword("secret123"))
		assert.False(t, u.VerifyPassword("wrong-pass"))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "secret123", GenderUnspecified, RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("jane@example.com", "short", GenderUnspecified, RoleUser)
		assert.Error(t, err)
	})
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		code string
	}{
		{"", RoleUser, ""},
		{"admin", RoleAdmin, ""},
		{" USER ", RoleUser, ""},
		{"root", "", "INVALID_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.code != "" {
				var de *shared.DomainError
				require.True(t, errors.As(err, &de))
				assert.Equal(t, tt.code, de.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("female")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	g, err = ParseGender("")
	require.NoError(t, err)
	assert.Equal(t, GenderUnspecified, g)

	_, err = ParseGender("other")
	assert.Error(t, err)
}

func TestNewUserSignedUpEvent(t *testing.T) {
	u, err := NewUser("jane@example.com", "secret123", GenderUnspecified, RoleAdmin)
	require.NoError(t, err)
	u.ID = 7

	e := NewUserSignedUpEvent(u)

	assert.Equal(t, EventTypeUserSignedUp, e.EventType())
	assert.Equal(t, int64(7), e.AggregateID())
	assert.Equal(t, RoleAdmin, e.Role)
}
