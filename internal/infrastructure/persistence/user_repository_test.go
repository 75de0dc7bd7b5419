package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice@Example.com")

	t.Run("finds by email ignoring case", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ALICE@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.True(t, found.VerifyPassword("password123"))

		taken, err := repo.ExistsByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("lookup reports existence and role", func(t *testing.T) {
		exists, err := repo.UserExists(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		role, err := repo.GetRole(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleUser, role)

		_, err = repo.GetRole(ctx, 999)
		assert.Equal(t, shared.CodeUserNotFound, codeOf(t, err))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup, err := identity.NewUser("alice@example.com", "another-pass", identity.GenderFemale, identity.RoleAdmin)
		require.NoError(t, err)

		err = repo.Save(ctx, dup)
		assert.Equal(t, shared.CodeEmailAlreadyInUse, codeOf(t, err))
	})
}

func TestGormProductRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	tee := seedProduct(t, db, "Tee", "19.99")

	exists, err := repo.ProductExists(ctx, tee.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	price, err := repo.GetPrice(ctx, tee.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("19.99").Equal(price))

	_, err = repo.GetPrice(ctx, 999)
	assert.Equal(t, shared.CodeProductNotFound, codeOf(t, err))

	found, err := repo.FindByID(ctx, tee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tee", found.Name)
}
