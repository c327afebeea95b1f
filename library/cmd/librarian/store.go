package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore/postgresengine"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/config"
)

// ErrUnknownDBAdapter is returned for a DB_ADAPTER value other than pgx, sql, or sqlx.
var ErrUnknownDBAdapter = errors.New("unknown DB_ADAPTER")

// openStore connects to Postgres with the adapter selected by DB_ADAPTER and makes sure the schema exists.
// The returned func closes the connection pools.
func openStore(
	ctx context.Context,
	logger catalogstore.Logger,
	metrics catalogstore.MetricsCollector,
) (catalogstore.Store, func(), error) {

	options := []postgresengine.Option{
		postgresengine.WithLogger(logger),
		postgresengine.WithMetrics(metrics),
	}

	var store postgresengine.CatalogStore
	var closeFn func()

	switch adapter := config.DBAdapter(); adapter {
	case config.AdapterPGX:
		pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
		if err != nil {
			return nil, nil, err
		}

		var replica *pgxpool.Pool
		if replicaConfig := config.PostgresPGXPoolReplicaConfig(); replicaConfig != nil {
			if replica, err = pgxpool.NewWithConfig(ctx, replicaConfig); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}

		closeFn = func() {
			pool.Close()

			if replica != nil {
				replica.Close()
			}
		}

		store, err = postgresengine.NewCatalogStoreFromPGXPoolWithReplica(pool, replica, options...)
		if err != nil {
			closeFn()
			return nil, nil, err
		}

	case config.AdapterSQL:
		db, err := config.PostgresSQLDBConfig(ctx)
		if err != nil {
			return nil, nil, err
		}

		closeFn = func() { _ = db.Close() }

		if store, err = postgresengine.NewCatalogStoreFromSQLDB(db, options...); err != nil {
			closeFn()
			return nil, nil, err
		}

	case config.AdapterSQLX:
		db, err := config.PostgresSQLXConfig(ctx)
		if err != nil {
			return nil, nil, err
		}

		closeFn = func() { _ = db.Close() }

		if store, err = postgresengine.NewCatalogStoreFromSQLX(db, options...); err != nil {
			closeFn()
			return nil, nil, err
		}

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDBAdapter, adapter)
	}

	if err := store.CreateSchema(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	return store, closeFn, nil
}
