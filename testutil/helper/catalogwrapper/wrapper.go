package catalogwrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore/memengine"
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore/postgresengine"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/config"
)

// Engine type constants
const (
	typeMemory  = "memory"
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"

	connectTimeout = 3 * time.Second
)

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetCatalogStore() catalogstore.Store
	Close()
}

// MemoryWrapper wraps in-memory testing
type MemoryWrapper struct {
	store *memengine.CatalogStore
}

func (w *MemoryWrapper) GetCatalogStore() catalogstore.Store {
	return w.store
}

func (w *MemoryWrapper) Close() {}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store postgresengine.CatalogStore
}

func (w *PGXPoolWrapper) GetCatalogStore() catalogstore.Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store postgresengine.CatalogStore
}

func (w *SQLDBWrapper) GetCatalogStore() catalogstore.Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store postgresengine.CatalogStore
}

func (w *SQLXWrapper) GetCatalogStore() catalogstore.Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// EngineTypeFromEnv returns the normalized ENGINE_TYPE.
func EngineTypeFromEnv() string {
	engineType := strings.ToLower(strings.TrimSpace(os.Getenv(config.EnvEngineType)))
	if engineType == "" {
		return typeMemory
	}

	return engineType
}

// CreateWrapperWithTestConfig creates the wrapper selected by ENGINE_TYPE, with an empty catalog.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var wrapper Wrapper

	switch engineType := EngineTypeFromEnv(); engineType {
	case typeMemory:
		store, err := memengine.NewCatalogStore()
		require.NoError(t, err, "error creating the memory engine in test setup")

		wrapper = &MemoryWrapper{store: store}

	case typePGXPool:
		pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
		require.NoError(t, err, "error creating the DB pool in test setup")

		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			t.Skipf("postgres is not reachable: %v", err)
		}

		store, err := postgresengine.NewCatalogStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating the catalog store in test setup")

		wrapper = &PGXPoolWrapper{pool: pool, store: store}
		createSchema(ctx, t, store)

	case typeSQLDB:
		db, err := config.PostgresSQLDBConfig(ctx)
		if err != nil {
			t.Skipf("postgres is not reachable: %v", err)
		}

		store, err := postgresengine.NewCatalogStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating the catalog store in test setup")

		wrapper = &SQLDBWrapper{db: db, store: store}
		createSchema(ctx, t, store)

	case typeSQLXDB:
		db, err := config.PostgresSQLXConfig(ctx)
		if err != nil {
			t.Skipf("postgres is not reachable: %v", err)
		}

		store, err := postgresengine.NewCatalogStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating the catalog store in test setup")

		wrapper = &SQLXWrapper{db: db, store: store}
		createSchema(ctx, t, store)

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineType))
	}

	CleanUp(t, wrapper)

	return wrapper
}

func createSchema(ctx context.Context, t testing.TB, store postgresengine.CatalogStore) {
	t.Helper()

	require.NoError(t, store.CreateSchema(ctx), "error creating the schema in test setup")
}

// CleanUp deletes every book, borrower, and holding.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	err := wrapper.GetCatalogStore().RunInTransaction(
		context.Background(),
		func(ctx context.Context, tx catalogstore.Tx) error {
			_, err := tx.DeleteAll(ctx)
			return err
		},
	)
	require.NoError(t, err, "error cleaning up the catalog")
}
