package postgresengine

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

const (
	dialectPostgres      = "postgres"
	tableBooks           = "books"
	tableStudents        = "students"
	tablePupils          = "pupils"
	tableStudentHoldings = "student_borrowed_books"
	tablePupilHoldings   = "pupil_borrowed_books"
	colID                = "id"
	colISBN              = "isbn"
	colTitle             = "title"
	colAuthor            = "author"
	colYear              = "year"
	colCopies            = "copies"
	colLabel             = "label"
	colUserID            = "user_id"
	colName              = "name"
	colSurname           = "surname"
	colGroup             = "group_name"
	colAge               = "age"
	colBorrowerID        = "borrower_id"
	colBookID            = "book_id"
	aliasHolding         = "h"
	aliasBook            = "b"
	aliasBorrower        = "r"
	aliasInserted        = "inserted"
	exprInserted         = "(xmax = 0)"
)

type sqlQueryString = string

// borrowerTables names the tables that hold one borrower kind.
type borrowerTables struct {
	borrowers string
	holdings  string
	withAge   bool
}

func tablesFor(kind catalogstore.BorrowerKind) (borrowerTables, error) {
	switch kind {
	case catalogstore.KindStudent:
		return borrowerTables{borrowers: tableStudents, holdings: tableStudentHoldings}, nil
	case catalogstore.KindPupil:
		return borrowerTables{borrowers: tablePupils, holdings: tablePupilHoldings, withAge: true}, nil
	default:
		return borrowerTables{}, catalogstore.ErrUnknownBorrowerKind
	}
}

func dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

func bookColumns() []any {
	return []any{colISBN, colTitle, colAuthor, colYear, colCopies, colLabel}
}

// borrowerColumns selects a literal zero as age for students, so both kinds scan the same way.
func borrowerColumns(tables borrowerTables) []any {
	age := any(goqu.V(0).As(colAge))
	if tables.withAge {
		age = colAge
	}

	return []any{colUserID, colName, colSurname, colGroup, age}
}

func buildSelectBookQuery(isbn string, forUpdate bool) (sqlQueryString, error) {
	selectStmt := dialect().
		From(tableBooks).
		Select(bookColumns()...).
		Where(goqu.C(colISBN).Eq(isbn))

	if forUpdate {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, _, err := selectStmt.ToSQL()

	return sqlQuery, err
}

func buildSelectBooksQuery() (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		From(tableBooks).
		Select(bookColumns()...).
		Order(goqu.C(colID).Asc()).
		ToSQL()

	return sqlQuery, err
}

func buildSelectBorrowerQuery(tables borrowerTables, userID string, forUpdate bool) (sqlQueryString, error) {
	selectStmt := dialect().
		From(tables.borrowers).
		Select(borrowerColumns(tables)...).
		Where(goqu.C(colUserID).Eq(userID))

	if forUpdate {
		selectStmt = selectStmt.ForUpdate(exp.Wait)
	}

	sqlQuery, _, err := selectStmt.ToSQL()

	return sqlQuery, err
}

func buildSelectBorrowersQuery(tables borrowerTables) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		From(tables.borrowers).
		Select(borrowerColumns(tables)...).
		Order(goqu.C(colID).Asc()).
		ToSQL()

	return sqlQuery, err
}

// buildSelectHoldingsQuery selects (user_id, isbn) pairs of one borrower kind, of a single borrower if userID is not empty.
func buildSelectHoldingsQuery(tables borrowerTables, userID string) (sqlQueryString, error) {
	selectStmt := dialect().
		From(goqu.T(tables.holdings).As(aliasHolding)).
		InnerJoin(
			goqu.T(tableBooks).As(aliasBook),
			goqu.On(goqu.T(aliasBook).Col(colID).Eq(goqu.T(aliasHolding).Col(colBookID))),
		).
		InnerJoin(
			goqu.T(tables.borrowers).As(aliasBorrower),
			goqu.On(goqu.T(aliasBorrower).Col(colID).Eq(goqu.T(aliasHolding).Col(colBorrowerID))),
		).
		Select(goqu.T(aliasBorrower).Col(colUserID), goqu.T(aliasBook).Col(colISBN)).
		Order(goqu.T(aliasBorrower).Col(colUserID).Asc(), goqu.T(aliasBook).Col(colISBN).Asc())

	if userID != "" {
		selectStmt = selectStmt.Where(goqu.T(aliasBorrower).Col(colUserID).Eq(userID))
	}

	sqlQuery, _, err := selectStmt.ToSQL()

	return sqlQuery, err
}

func buildCountQuery(table string) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		From(table).
		Select(goqu.COUNT(goqu.Star())).
		ToSQL()

	return sqlQuery, err
}

func bookRecord(book catalogstore.BookRecord) goqu.Record {
	return goqu.Record{
		colISBN:   book.ISBN,
		colTitle:  book.Title,
		colAuthor: book.Author,
		colYear:   book.Year,
		colCopies: book.Copies,
		colLabel:  book.Label,
	}
}

func buildInsertBookQuery(book catalogstore.BookRecord) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Insert(tableBooks).
		Rows(bookRecord(book)).
		ToSQL()

	return sqlQuery, err
}

// buildUpsertBookQuery returns one boolean row telling whether the row was inserted.
func buildUpsertBookQuery(book catalogstore.BookRecord) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Insert(tableBooks).
		Rows(bookRecord(book)).
		OnConflict(goqu.DoUpdate(colISBN, goqu.Record{
			colTitle:  goqu.I("excluded." + colTitle),
			colAuthor: goqu.I("excluded." + colAuthor),
			colYear:   goqu.I("excluded." + colYear),
			colCopies: goqu.I("excluded." + colCopies),
			colLabel:  goqu.I("excluded." + colLabel),
		})).
		Returning(goqu.L(exprInserted).As(aliasInserted)).
		ToSQL()

	return sqlQuery, err
}

func buildUpdateBookCopiesQuery(isbn string, copies int) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Update(tableBooks).
		Set(goqu.Record{colCopies: copies}).
		Where(goqu.C(colISBN).Eq(isbn)).
		ToSQL()

	return sqlQuery, err
}

func borrowerRecord(tables borrowerTables, borrower catalogstore.BorrowerRecord) goqu.Record {
	record := goqu.Record{
		colUserID:  borrower.UserID,
		colName:    borrower.Name,
		colSurname: borrower.Surname,
		colGroup:   borrower.Group,
	}

	if tables.withAge {
		record[colAge] = borrower.Age
	}

	return record
}

func buildInsertBorrowerQuery(tables borrowerTables, borrower catalogstore.BorrowerRecord) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Insert(tables.borrowers).
		Rows(borrowerRecord(tables, borrower)).
		ToSQL()

	return sqlQuery, err
}

func buildUpsertBorrowerQuery(tables borrowerTables, borrower catalogstore.BorrowerRecord) (sqlQueryString, error) {
	update := goqu.Record{
		colName:    goqu.I("excluded." + colName),
		colSurname: goqu.I("excluded." + colSurname),
		colGroup:   goqu.I("excluded." + colGroup),
	}

	if tables.withAge {
		update[colAge] = goqu.I("excluded." + colAge)
	}

	sqlQuery, _, err := dialect().
		Insert(tables.borrowers).
		Rows(borrowerRecord(tables, borrower)).
		OnConflict(goqu.DoUpdate(colUserID, update)).
		Returning(goqu.L(exprInserted).As(aliasInserted)).
		ToSQL()

	return sqlQuery, err
}

// buildInsertHoldingQuery inserts nothing if the borrower or the book does not exist or the holding already exists.
func buildInsertHoldingQuery(tables borrowerTables, userID string, isbn string) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Insert(tables.holdings).
		Cols(colBorrowerID, colBookID).
		FromQuery(
			dialect().
				From(goqu.T(tables.borrowers).As(aliasBorrower), goqu.T(tableBooks).As(aliasBook)).
				Select(goqu.T(aliasBorrower).Col(colID), goqu.T(aliasBook).Col(colID)).
				Where(
					goqu.T(aliasBorrower).Col(colUserID).Eq(userID),
					goqu.T(aliasBook).Col(colISBN).Eq(isbn),
				),
		).
		OnConflict(goqu.DoNothing()).
		ToSQL()

	return sqlQuery, err
}

func borrowerIDSubquery(tables borrowerTables, userID string) *goqu.SelectDataset {
	return dialect().
		From(tables.borrowers).
		Select(colID).
		Where(goqu.C(colUserID).Eq(userID))
}

func buildDeleteHoldingQuery(tables borrowerTables, userID string, isbn string) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Delete(tables.holdings).
		Where(
			goqu.C(colBorrowerID).In(borrowerIDSubquery(tables, userID)),
			goqu.C(colBookID).In(dialect().From(tableBooks).Select(colID).Where(goqu.C(colISBN).Eq(isbn))),
		).
		ToSQL()

	return sqlQuery, err
}

func buildClearHoldingsQuery(tables borrowerTables, userID string) (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Delete(tables.holdings).
		Where(goqu.C(colBorrowerID).In(borrowerIDSubquery(tables, userID))).
		ToSQL()

	return sqlQuery, err
}

func buildTruncateQuery() (sqlQueryString, error) {
	sqlQuery, _, err := dialect().
		Truncate(tableStudentHoldings, tablePupilHoldings, tableStudents, tablePupils, tableBooks).
		Cascade().
		Identity("RESTART").
		ToSQL()

	return sqlQuery, err
}

// buildSetLockTimeoutQuery is plain SQL since goqu has no builder for SET statements.
func buildSetLockTimeoutQuery(timeout time.Duration) sqlQueryString {
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout.Milliseconds())
}
