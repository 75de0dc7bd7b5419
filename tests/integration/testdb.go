// Package integration runs the order lifecycle against a real PostgreSQL
// database started by testcontainers.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tshirtshop/backend/internal/domain/catalog"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/infrastructure/migration"
	"github.com/tshirtshop/backend/internal/infrastructure/persistence"
	"github.com/tshirtshop/backend/migrations"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const postgresImage = "postgres:16-alpine"

// TestDB is a freshly migrated shop schema in a throwaway container
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

// NewTestDB starts PostgreSQL, applies the embedded migrations and registers
// cleanup of both the pool and the container
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("tshirtshop_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			// postgres logs readiness once for the init server and once for the real one
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), persistence.GormConfig(persistence.Options{}))
	require.NoError(t, err, "connect to postgres")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// The migrator is left open: closing it would close sqlDB as well
	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up(), "apply migrations")

	return &TestDB{DB: db, t: t}
}

// CreateTestUser stores a user with the given role
func (tdb *TestDB) CreateTestUser(email string, role identity.Role) *identity.User {
	tdb.t.Helper()

	u, err := identity.NewUser(email, "password123", identity.GenderUnspecified, role)
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormUserRepository(tdb.DB).Save(context.Background(), u))
	return u
}

// CreateTestProduct stores a product at price, given as a decimal string
func (tdb *TestDB) CreateTestProduct(name, price string) *catalog.Product {
	tdb.t.Helper()

	p, err := catalog.NewProduct(name, "", decimal.RequireFromString(price))
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormProductRepository(tdb.DB).Save(context.Background(), p))
	return p
}
