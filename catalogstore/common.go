package catalogstore

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrConcurrencyConflict = errors.New("concurrency conflict, the transaction could not be serialized")

var ErrBookNotFound = errors.New("book not found")
var ErrBorrowerNotFound = errors.New("borrower not found")
var ErrHoldingNotFound = errors.New("borrower does not hold this book")
var ErrDuplicateKey = errors.New("a record with this natural key already exists")
var ErrUnknownBorrowerKind = errors.New("unknown borrower kind")
var ErrReadOnlyTransaction = errors.New("write attempted in a read-only transaction")
var ErrInvalidRecord = errors.New("record is not valid")

var ErrBuildingQueryFailed = errors.New("building the query failed")
var ErrQueryingFailed = errors.New("querying the database failed")
var ErrExecutingFailed = errors.New("executing the statement failed")
var ErrScanningDBRowFailed = errors.New("scanning the database row failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
var ErrBeginTransactionFailed = errors.New("beginning the transaction failed")
var ErrCommitTransactionFailed = errors.New("committing the transaction failed")
