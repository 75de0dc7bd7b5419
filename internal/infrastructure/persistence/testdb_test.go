package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tshirtshop/backend/internal/domain/catalog"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps every statement on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(Options{}))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ProductModel{},
		&models.OrderModel{},
		&models.OrderProductModel{},
		&models.OrderedModel{},
	))
	return db
}

// newMockDB returns a GORM handle over sqlmock with the postgres dialector
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, GormConfig(Options{}))
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func seedUser(t *testing.T, db *gorm.DB, email string) *identity.User {
	t.Helper()
	u, err := identity.NewUser(email, "password123", identity.GenderUnspecified, identity.RoleUser)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}
