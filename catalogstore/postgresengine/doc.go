// Package postgresengine provides a PostgreSQL implementation of the catalogstore.Store interface.
//
// The engine supports three database adapters:
//   - pgx.Pool (optionally with a replica pool for read-only transactions)
//   - database/sql.DB with the lib/pq driver
//   - sqlx.DB
//
// All SQL is built with goqu and runs in READ COMMITTED transactions. Transactions opened with
// RunInTransaction lock the rows returned by FindBorrower and FindBook (SELECT ... FOR UPDATE), so
// concurrent lending operations on the same borrower or book are serialized by PostgreSQL.
// Callers should lock the borrower first and then books in ascending ISBN order.
//
// Serialization failures, deadlocks, and lock timeouts are reported as
// catalogstore.ErrConcurrencyConflict, unique violations as catalogstore.ErrDuplicateKey.
// The driver error is joined to the sentinel so errors.As still reaches it.
//
// Example:
//
//	store, err := postgresengine.NewCatalogStoreFromPGXPool(pool, postgresengine.WithLogger(slog.Default()))
//	if err != nil { ... }
//	if err := store.CreateSchema(ctx); err != nil { ... }
//
//	err = store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
//	    book, err := tx.FindBook(ctx, "978-0132350884")
//	    ...
//	})
package postgresengine
