package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore/postgresengine/internal/adapters"
)

const (
	logActionSelectBook      = "select book"
	logActionSelectBooks     = "select books"
	logActionSelectBorrower  = "select borrower"
	logActionSelectBorrowers = "select borrowers"
	logActionSelectHoldings  = "select holdings"
	logActionCount           = "count"
	logActionInsertBook      = "insert book"
	logActionUpsertBook      = "upsert book"
	logActionUpdateCopies    = "update copies"
	logActionInsertBorrower  = "insert borrower"
	logActionUpsertBorrower  = "upsert borrower"
	logActionInsertHolding   = "insert holding"
	logActionDeleteHolding   = "delete holding"
	logActionClearHoldings   = "clear holdings"
	logActionTruncate        = "truncate"
	logActionSetLockTimeout  = "set lock timeout"
)

// transaction implements catalogstore.Tx on top of one database transaction.
type transaction struct {
	store      CatalogStore
	dbTx       adapters.DBTx
	readOnly   bool
	statements int
}

func (tx *transaction) FindBook(ctx context.Context, isbn string) (catalogstore.BookRecord, error) {
	books, err := tx.selectBooks(ctx, isbn, !tx.readOnly)
	if err != nil {
		return catalogstore.BookRecord{}, err
	}

	if len(books) == 0 {
		return catalogstore.BookRecord{}, catalogstore.ErrBookNotFound
	}

	return books[0], nil
}

func (tx *transaction) FindBorrower(
	ctx context.Context,
	kind catalogstore.BorrowerKind,
	userID string,
) (catalogstore.BorrowerRecord, error) {

	tables, err := tablesFor(kind)
	if err != nil {
		return catalogstore.BorrowerRecord{}, err
	}

	borrowers, err := tx.selectBorrower(ctx, kind, tables, userID, !tx.readOnly)
	if err != nil {
		return catalogstore.BorrowerRecord{}, err
	}

	if len(borrowers) == 0 {
		return catalogstore.BorrowerRecord{}, catalogstore.ErrBorrowerNotFound
	}

	holdings, err := tx.selectHoldings(ctx, tables, userID)
	if err != nil {
		return catalogstore.BorrowerRecord{}, err
	}

	borrower := borrowers[0]
	if held, ok := holdings[userID]; ok {
		borrower.BorrowedISBNs = held
	}

	return borrower, nil
}

func (tx *transaction) ListBooks(ctx context.Context) ([]catalogstore.BookRecord, error) {
	sqlQuery, err := buildSelectBooksQuery()
	if err != nil {
		return nil, tx.buildFailed(ctx, err)
	}

	return tx.queryBooks(ctx, sqlQuery, logActionSelectBooks)
}

func (tx *transaction) ListBorrowers(ctx context.Context, kind catalogstore.BorrowerKind) ([]catalogstore.BorrowerRecord, error) {
	tables, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	sqlQuery, err := buildSelectBorrowersQuery(tables)
	if err != nil {
		return nil, tx.buildFailed(ctx, err)
	}

	borrowers, err := tx.queryBorrowers(ctx, kind, sqlQuery, logActionSelectBorrowers)
	if err != nil {
		return nil, err
	}

	holdings, err := tx.selectHoldings(ctx, tables, "")
	if err != nil {
		return nil, err
	}

	for i := range borrowers {
		if held, ok := holdings[borrowers[i].UserID]; ok {
			borrowers[i].BorrowedISBNs = held
		}
	}

	return borrowers, nil
}

func (tx *transaction) CountAll(ctx context.Context) (catalogstore.Counts, error) {
	var counts catalogstore.Counts

	for table, target := range map[string]*int{
		tableBooks:    &counts.Books,
		tableStudents: &counts.Students,
		tablePupils:   &counts.Pupils,
	} {
		sqlQuery, err := buildCountQuery(table)
		if err != nil {
			return catalogstore.Counts{}, tx.buildFailed(ctx, err)
		}

		count, err := tx.queryCount(ctx, sqlQuery)
		if err != nil {
			return catalogstore.Counts{}, err
		}

		*target = count
	}

	return counts, nil
}

func (tx *transaction) InsertBook(ctx context.Context, book catalogstore.BookRecord) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	sqlQuery, err := buildInsertBookQuery(book)
	if err != nil {
		return tx.buildFailed(ctx, err)
	}

	_, err = tx.exec(ctx, sqlQuery, logActionInsertBook)

	return err
}

func (tx *transaction) UpsertBook(ctx context.Context, book catalogstore.BookRecord) (catalogstore.UpsertOutcome, error) {
	if tx.readOnly {
		return 0, catalogstore.ErrReadOnlyTransaction
	}

	sqlQuery, err := buildUpsertBookQuery(book)
	if err != nil {
		return 0, tx.buildFailed(ctx, err)
	}

	return tx.queryUpsertOutcome(ctx, sqlQuery, logActionUpsertBook)
}

func (tx *transaction) UpdateBookCopies(ctx context.Context, isbn string, copies int) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	if copies < 0 {
		return catalogstore.ErrInvalidRecord
	}

	sqlQuery, err := buildUpdateBookCopiesQuery(isbn, copies)
	if err != nil {
		return tx.buildFailed(ctx, err)
	}

	rowsAffected, err := tx.exec(ctx, sqlQuery, logActionUpdateCopies)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return catalogstore.ErrBookNotFound
	}

	return nil
}

func (tx *transaction) InsertBorrower(ctx context.Context, borrower catalogstore.BorrowerRecord) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	tables, err := tablesFor(borrower.Kind)
	if err != nil {
		return err
	}

	sqlQuery, err := buildInsertBorrowerQuery(tables, borrower)
	if err != nil {
		return tx.buildFailed(ctx, err)
	}

	_, err = tx.exec(ctx, sqlQuery, logActionInsertBorrower)

	return err
}

func (tx *transaction) UpsertBorrower(
	ctx context.Context,
	borrower catalogstore.BorrowerRecord,
) (catalogstore.UpsertOutcome, error) {

	if tx.readOnly {
		return 0, catalogstore.ErrReadOnlyTransaction
	}

	tables, err := tablesFor(borrower.Kind)
	if err != nil {
		return 0, err
	}

	sqlQuery, err := buildUpsertBorrowerQuery(tables, borrower)
	if err != nil {
		return 0, tx.buildFailed(ctx, err)
	}

	return tx.queryUpsertOutcome(ctx, sqlQuery, logActionUpsertBorrower)
}

func (tx *transaction) AddHolding(ctx context.Context, kind catalogstore.BorrowerKind, userID string, isbn string) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	tables, err := tablesFor(kind)
	if err != nil {
		return err
	}

	sqlQuery, err := buildInsertHoldingQuery(tables, userID, isbn)
	if err != nil {
		return tx.buildFailed(ctx, err)
	}

	rowsAffected, err := tx.exec(ctx, sqlQuery, logActionInsertHolding)
	if err != nil {
		return err
	}

	if rowsAffected > 0 {
		return nil
	}

	// Nothing was inserted: find out which part was missing.
	if err = tx.requireBorrower(ctx, kind, tables, userID); err != nil {
		return err
	}

	books, err := tx.selectBooks(ctx, isbn, false)
	if err != nil {
		return err
	}

	if len(books) == 0 {
		return catalogstore.ErrBookNotFound
	}

	return catalogstore.ErrDuplicateKey
}

func (tx *transaction) RemoveHolding(ctx context.Context, kind catalogstore.BorrowerKind, userID string, isbn string) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	tables, err := tablesFor(kind)
	if err != nil {
		return err
	}

	sqlQuery, err := buildDeleteHoldingQuery(tables, userID, isbn)
	if err != nil {
		return tx.buildFailed(ctx, err)
	}

	rowsAffected, err := tx.exec(ctx, sqlQuery, logActionDeleteHolding)
	if err != nil {
		return err
	}

	if rowsAffected > 0 {
		return nil
	}

	if err = tx.requireBorrower(ctx, kind, tables, userID); err != nil {
		return err
	}

	return catalogstore.ErrHoldingNotFound
}

func (tx *transaction) ClearHoldings(ctx context.Context, kind catalogstore.BorrowerKind, userID string) (int, error) {
	if tx.readOnly {
		return 0, catalogstore.ErrReadOnlyTransaction
	}

	tables, err := tablesFor(kind)
	if err != nil {
		return 0, err
	}

	if err = tx.requireBorrower(ctx, kind, tables, userID); err != nil {
		return 0, err
	}

	sqlQuery, err := buildClearHoldingsQuery(tables, userID)
	if err != nil {
		return 0, tx.buildFailed(ctx, err)
	}

	rowsAffected, err := tx.exec(ctx, sqlQuery, logActionClearHoldings)
	if err != nil {
		return 0, err
	}

	return int(rowsAffected), nil
}

func (tx *transaction) DeleteAll(ctx context.Context) (catalogstore.Counts, error) {
	if tx.readOnly {
		return catalogstore.Counts{}, catalogstore.ErrReadOnlyTransaction
	}

	counts, err := tx.CountAll(ctx)
	if err != nil {
		return catalogstore.Counts{}, err
	}

	sqlQuery, err := buildTruncateQuery()
	if err != nil {
		return catalogstore.Counts{}, tx.buildFailed(ctx, err)
	}

	if _, err = tx.exec(ctx, sqlQuery, logActionTruncate); err != nil {
		return catalogstore.Counts{}, err
	}

	return counts, nil
}

func (tx *transaction) setLockTimeout(ctx context.Context, timeout time.Duration) error {
	_, err := tx.exec(ctx, buildSetLockTimeoutQuery(timeout), logActionSetLockTimeout)

	return err
}

func (tx *transaction) requireBorrower(
	ctx context.Context,
	kind catalogstore.BorrowerKind,
	tables borrowerTables,
	userID string,
) error {

	borrowers, err := tx.selectBorrower(ctx, kind, tables, userID, false)
	if err != nil {
		return err
	}

	if len(borrowers) == 0 {
		return catalogstore.ErrBorrowerNotFound
	}

	return nil
}

func (tx *transaction) selectBooks(ctx context.Context, isbn string, forUpdate bool) ([]catalogstore.BookRecord, error) {
	sqlQuery, err := buildSelectBookQuery(isbn, forUpdate)
	if err != nil {
		return nil, tx.buildFailed(ctx, err)
	}

	return tx.queryBooks(ctx, sqlQuery, logActionSelectBook)
}

func (tx *transaction) selectBorrower(
	ctx context.Context,
	kind catalogstore.BorrowerKind,
	tables borrowerTables,
	userID string,
	forUpdate bool,
) ([]catalogstore.BorrowerRecord, error) {

	sqlQuery, err := buildSelectBorrowerQuery(tables, userID, forUpdate)
	if err != nil {
		return nil, tx.buildFailed(ctx, err)
	}

	return tx.queryBorrowers(ctx, kind, sqlQuery, logActionSelectBorrower)
}

func (tx *transaction) selectHoldings(ctx context.Context, tables borrowerTables, userID string) (map[string][]string, error) {
	sqlQuery, err := buildSelectHoldingsQuery(tables, userID)
	if err != nil {
		return nil, tx.buildFailed(ctx, err)
	}

	rows, err := tx.query(ctx, sqlQuery, logActionSelectHoldings)
	if err != nil {
		return nil, err
	}
	defer tx.closeRows(ctx, rows)

	holdings := make(map[string][]string)
	for rows.Next() {
		var holder, isbn string
		if err = rows.Scan(&holder, &isbn); err != nil {
			return nil, tx.scanFailed(ctx, err)
		}

		holdings[holder] = append(holdings[holder], isbn)
	}

	if err = rows.Err(); err != nil {
		return nil, tx.queryFailed(ctx, sqlQuery, err)
	}

	return holdings, nil
}

func (tx *transaction) queryBooks(ctx context.Context, sqlQuery string, action string) ([]catalogstore.BookRecord, error) {
	rows, err := tx.query(ctx, sqlQuery, action)
	if err != nil {
		return nil, err
	}
	defer tx.closeRows(ctx, rows)

	books := make([]catalogstore.BookRecord, 0)
	for rows.Next() {
		var book catalogstore.BookRecord
		if err = rows.Scan(&book.ISBN, &book.Title, &book.Author, &book.Year, &book.Copies, &book.Label); err != nil {
			return nil, tx.scanFailed(ctx, err)
		}

		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, tx.queryFailed(ctx, sqlQuery, err)
	}

	return books, nil
}

func (tx *transaction) queryBorrowers(
	ctx context.Context,
	kind catalogstore.BorrowerKind,
	sqlQuery string,
	action string,
) ([]catalogstore.BorrowerRecord, error) {

	rows, err := tx.query(ctx, sqlQuery, action)
	if err != nil {
		return nil, err
	}
	defer tx.closeRows(ctx, rows)

	borrowers := make([]catalogstore.BorrowerRecord, 0)
	for rows.Next() {
		borrower := catalogstore.BorrowerRecord{Kind: kind, BorrowedISBNs: []string{}}
		if err = rows.Scan(&borrower.UserID, &borrower.Name, &borrower.Surname, &borrower.Group, &borrower.Age); err != nil {
			return nil, tx.scanFailed(ctx, err)
		}

		borrowers = append(borrowers, borrower)
	}

	if err = rows.Err(); err != nil {
		return nil, tx.queryFailed(ctx, sqlQuery, err)
	}

	return borrowers, nil
}

func (tx *transaction) queryCount(ctx context.Context, sqlQuery string) (int, error) {
	rows, err := tx.query(ctx, sqlQuery, logActionCount)
	if err != nil {
		return 0, err
	}
	defer tx.closeRows(ctx, rows)

	var count int
	if rows.Next() {
		if err = rows.Scan(&count); err != nil {
			return 0, tx.scanFailed(ctx, err)
		}
	}

	if err = rows.Err(); err != nil {
		return 0, tx.queryFailed(ctx, sqlQuery, err)
	}

	return count, nil
}

func (tx *transaction) queryUpsertOutcome(ctx context.Context, sqlQuery string, action string) (catalogstore.UpsertOutcome, error) {
	rows, err := tx.query(ctx, sqlQuery, action)
	if err != nil {
		return 0, err
	}
	defer tx.closeRows(ctx, rows)

	inserted := false
	if rows.Next() {
		if err = rows.Scan(&inserted); err != nil {
			return 0, tx.scanFailed(ctx, err)
		}
	}

	if err = rows.Err(); err != nil {
		return 0, tx.queryFailed(ctx, sqlQuery, err)
	}

	if inserted {
		return catalogstore.Created, nil
	}

	return catalogstore.Updated, nil
}

func (tx *transaction) query(ctx context.Context, sqlQuery string, action string) (adapters.DBRows, error) {
	start := time.Now()
	tx.statements++

	rows, err := tx.dbTx.Query(ctx, sqlQuery)
	if err != nil {
		return nil, tx.queryFailed(ctx, sqlQuery, err)
	}

	tx.store.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	return rows, nil
}

func (tx *transaction) exec(ctx context.Context, sqlQuery string, action string) (int64, error) {
	start := time.Now()
	tx.statements++

	result, err := tx.dbTx.Exec(ctx, sqlQuery)
	if err != nil {
		return 0, tx.failed(ctx, logMsgDBExecFailed, sqlQuery, err, catalogstore.ErrExecutingFailed)
	}

	tx.store.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		tx.store.logError(ctx, logMsgRowsAffectedFailed, err, logAttrQuery, sqlQuery)
		return 0, errors.Join(catalogstore.ErrGettingRowsAffectedFailed, err)
	}

	return rowsAffected, nil
}

func (tx *transaction) queryFailed(ctx context.Context, sqlQuery string, err error) error {
	return tx.failed(ctx, logMsgDBQueryFailed, sqlQuery, err, catalogstore.ErrQueryingFailed)
}

// failed maps a driver error. Concurrency conflicts are expected under load and not logged as errors here.
func (tx *transaction) failed(ctx context.Context, message string, sqlQuery string, err error, fallback error) error {
	mapped := mapDriverError(err, fallback)

	if !errors.Is(mapped, catalogstore.ErrConcurrencyConflict) {
		tx.store.logError(ctx, message, err, logAttrQuery, sqlQuery)
		tx.store.recordErrorMetrics(ctx, tx.operation(), errorTypeOf(mapped))
	}

	return mapped
}

func (tx *transaction) buildFailed(ctx context.Context, err error) error {
	tx.store.logError(ctx, logMsgBuildQueryFailed, err)
	return errors.Join(catalogstore.ErrBuildingQueryFailed, err)
}

func (tx *transaction) scanFailed(ctx context.Context, err error) error {
	tx.store.logError(ctx, logMsgScanRowFailed, err)
	return errors.Join(catalogstore.ErrScanningDBRowFailed, err)
}

func (tx *transaction) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		tx.store.logError(ctx, logMsgCloseRowsFailed, err)
	}
}

func (tx *transaction) operation() string {
	if tx.readOnly {
		return operationView
	}

	return operationTransaction
}
