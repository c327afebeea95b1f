package postgresengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

// SQLSTATE codes the engine maps to catalogstore sentinels.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
	sqlStateCheckViolation       = "23514"
	sqlStateStringTooLong        = "22001"
)

// sqlState extracts the SQLSTATE from pgx and lib/pq errors. It returns an empty string for any other error.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// mapDriverError joins err with the catalogstore sentinel matching its SQLSTATE, or with fallback.
func mapDriverError(err error, fallback error) error {
	switch sqlState(err) {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return errors.Join(catalogstore.ErrConcurrencyConflict, err)
	case sqlStateUniqueViolation:
		return errors.Join(catalogstore.ErrDuplicateKey, err)
	case sqlStateCheckViolation, sqlStateStringTooLong:
		return errors.Join(catalogstore.ErrInvalidRecord, err)
	default:
		return errors.Join(fallback, err)
	}
}

func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, catalogstore.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, catalogstore.ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, catalogstore.ErrInvalidRecord):
		return "invalid_record"
	default:
		return "database"
	}
}
