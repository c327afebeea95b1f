// Package config provides configuration helpers for the lending catalog.
//
// It loads an optional .env file with godotenv, reads the PostgreSQL DSNs and engine selection from the
// environment, and contains factory functions for database connections using the supported PostgreSQL
// drivers (pgx.Pool, sql.DB, sqlx.DB) with pre-configured pool limits.
//
// This package is part of the shell (infrastructure) layer.
package config
