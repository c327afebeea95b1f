package postgresengine

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore/postgresengine/internal/adapters"
)

const (
	defaultLockTimeout           = 5 * time.Second
	logMsgBeginTxFailed          = "failed to begin transaction"
	logMsgCommitFailed           = "failed to commit transaction"
	logMsgRollbackFailed         = "failed to roll back transaction"
	logMsgSetLockTimeoutFailed   = "failed to set lock timeout"
	logMsgCreateSchemaFailed     = "failed to create schema"
	logMsgBuildQueryFailed       = "failed to build query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database statement execution failed"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "catalogstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrDurationMS            = "duration_ms"
	logAttrReadOnly              = "read_only"
	logAttrStatements            = "statements"
	logActionCommitted           = "transaction committed"
	logActionRolledBack          = "transaction rolled back"
	logActionSchemaCreated       = "schema created"
	metricTransactionDuration    = "catalogstore_transaction_duration_seconds"
	metricConcurrencyConflicts   = "catalogstore_concurrency_conflicts_total"
	metricDatabaseErrors         = "catalogstore_database_errors_total"
	labelOperation               = "operation"
	labelStatus                  = "status"
	labelErrorType               = "error_type"
	operationTransaction         = "transaction"
	operationView                = "view"
	statusSuccess                = "success"
	statusRolledBack             = "rolled_back"
	statusError                  = "error"
	errorTypeBeginTx             = "begin_transaction"
	errorTypeCommit              = "commit"
	errorTypeLockTimeout         = "set_lock_timeout"
	errorTypeConcurrencyConflict = "concurrency_conflict"
)

//go:embed schema.sql
var schemaSQL string

// CatalogStore is a catalogstore.Store backed by PostgreSQL.
type CatalogStore struct {
	db               adapters.DBAdapter
	logger           catalogstore.Logger
	contextualLogger catalogstore.ContextualLogger
	metricsCollector catalogstore.MetricsCollector
	lockTimeout      time.Duration
}

var _ catalogstore.Store = CatalogStore{}

// NewCatalogStoreFromPGXPool creates a new CatalogStore using a pgx Pool with optional configuration.
func NewCatalogStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalogstore.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewPGXAdapter(db), options...)
}

// NewCatalogStoreFromPGXPoolWithReplica creates a new CatalogStore using a primary and a replica pgx Pool.
// Read-only transactions go to the replica when the context carries catalogstore.WithEventualConsistency.
func NewCatalogStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalogstore.ErrNilDatabaseConnection
	}

	if replica == nil {
		return newCatalogStore(adapters.NewPGXAdapter(db), options...)
	}

	return newCatalogStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewCatalogStoreFromSQLDB creates a new CatalogStore using a sql.DB with optional configuration.
func NewCatalogStoreFromSQLDB(db *sql.DB, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalogstore.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewSQLAdapter(db), options...)
}

// NewCatalogStoreFromSQLX creates a new CatalogStore using a sqlx.DB with optional configuration.
func NewCatalogStoreFromSQLX(db *sqlx.DB, options ...Option) (CatalogStore, error) {
	if db == nil {
		return CatalogStore{}, catalogstore.ErrNilDatabaseConnection
	}

	return newCatalogStore(adapters.NewSQLXAdapter(db), options...)
}

func newCatalogStore(db adapters.DBAdapter, options ...Option) (CatalogStore, error) {
	s := CatalogStore{
		db:          db,
		lockTimeout: defaultLockTimeout,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return CatalogStore{}, err
		}
	}

	return s, nil
}

// CreateSchema creates the catalog tables if they do not exist yet.
func (s CatalogStore) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		s.logError(ctx, logMsgCreateSchemaFailed, err)
		return errors.Join(catalogstore.ErrExecutingFailed, err)
	}

	s.logOperation(ctx, logActionSchemaCreated)

	return nil
}

// RunInTransaction executes fn in a READ COMMITTED read-write transaction on the primary database.
// The transaction commits if fn returns nil and rolls back otherwise.
func (s CatalogStore) RunInTransaction(ctx context.Context, fn catalogstore.TxFunc) error {
	return s.runInTransaction(ctx, fn, false)
}

// View executes fn in a read-only transaction.
func (s CatalogStore) View(ctx context.Context, fn catalogstore.TxFunc) error {
	return s.runInTransaction(ctx, fn, true)
}

func (s CatalogStore) runInTransaction(ctx context.Context, fn catalogstore.TxFunc, readOnly bool) error {
	operation := operationTransaction
	if readOnly {
		operation = operationView
	}

	start := time.Now()

	dbTx, err := s.db.BeginTx(ctx, readOnly)
	if err != nil {
		s.logError(ctx, logMsgBeginTxFailed, err, logAttrReadOnly, readOnly)
		s.recordErrorMetrics(ctx, operation, errorTypeBeginTx)

		return mapDriverError(err, catalogstore.ErrBeginTransactionFailed)
	}

	tx := &transaction{store: s, dbTx: dbTx, readOnly: readOnly}

	if !readOnly && s.lockTimeout > 0 {
		if lockErr := tx.setLockTimeout(ctx, s.lockTimeout); lockErr != nil {
			s.logError(ctx, logMsgSetLockTimeoutFailed, lockErr)
			s.recordErrorMetrics(ctx, operation, errorTypeLockTimeout)
			s.rollback(ctx, dbTx)

			return lockErr
		}
	}

	if fnErr := fn(ctx, tx); fnErr != nil {
		s.rollback(ctx, dbTx)
		s.recordDurationMetrics(ctx, time.Since(start), operation, statusRolledBack)

		if errors.Is(fnErr, catalogstore.ErrConcurrencyConflict) {
			s.logOperation(ctx, logMsgConcurrencyConflict, logAttrError, fnErr.Error())
			s.recordConcurrencyConflictMetrics(ctx, operation)
		}

		s.logQueryOutcome(ctx, logActionRolledBack, readOnly, tx.statements, time.Since(start))

		return fnErr
	}

	if err = dbTx.Commit(ctx); err != nil {
		s.logError(ctx, logMsgCommitFailed, err, logAttrReadOnly, readOnly)
		s.recordDurationMetrics(ctx, time.Since(start), operation, statusError)

		mapped := mapDriverError(err, catalogstore.ErrCommitTransactionFailed)
		if errors.Is(mapped, catalogstore.ErrConcurrencyConflict) {
			s.recordConcurrencyConflictMetrics(ctx, operation)
		} else {
			s.recordErrorMetrics(ctx, operation, errorTypeCommit)
		}

		return mapped
	}

	s.recordDurationMetrics(ctx, time.Since(start), operation, statusSuccess)
	s.logQueryOutcome(ctx, logActionCommitted, readOnly, tx.statements, time.Since(start))

	return nil
}

// rollback uses a context that survives cancellation of ctx, so a canceled caller still releases its locks.
func (s CatalogStore) rollback(ctx context.Context, dbTx adapters.DBTx) {
	if err := dbTx.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.logWarn(ctx, logMsgRollbackFailed, logAttrError, err.Error())
	}
}
