// Package adapters provide database adapter implementations for the PostgreSQL catalog engine.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters open transactions through the common DBAdapter
// interface, so the engine runs the same statements on any supported connection type.
//
// Only the pgx adapter supports a replica pool. Read-only transactions use it when the context
// asks for eventual consistency.
package adapters
