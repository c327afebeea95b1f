// Package catalogwrapper runs the same tests against every catalog engine.
//
// The engine is selected with the ENGINE_TYPE environment variable:
//
//	memory (default)  in-memory engine
//	pgx.pool          Postgres engine on a pgxpool.Pool
//	sql.db            Postgres engine on a database/sql DB with lib/pq
//	sqlx.db           Postgres engine on a sqlx.DB
//
// Postgres variants skip the test if the database configured by CATALOG_POSTGRES_DSN is not reachable.
package catalogwrapper
