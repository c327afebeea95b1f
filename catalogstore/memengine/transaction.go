package memengine

import (
	"context"
	"slices"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

type transaction struct {
	state    state
	readOnly bool
}

func (tx *transaction) FindBook(_ context.Context, isbn string) (catalogstore.BookRecord, error) {
	book, ok := tx.state.books[isbn]
	if !ok {
		return catalogstore.BookRecord{}, catalogstore.ErrBookNotFound
	}

	return book, nil
}

func (tx *transaction) FindBorrower(
	_ context.Context,
	kind catalogstore.BorrowerKind,
	userID string,
) (catalogstore.BorrowerRecord, error) {

	byID, err := tx.borrowersOf(kind)
	if err != nil {
		return catalogstore.BorrowerRecord{}, err
	}

	borrower, ok := byID[userID]
	if !ok {
		return catalogstore.BorrowerRecord{}, catalogstore.ErrBorrowerNotFound
	}

	return cloneBorrower(borrower), nil
}

func (tx *transaction) ListBooks(_ context.Context) ([]catalogstore.BookRecord, error) {
	books := make([]catalogstore.BookRecord, 0, len(tx.state.bookOrder))
	for _, isbn := range tx.state.bookOrder {
		books = append(books, tx.state.books[isbn])
	}

	return books, nil
}

func (tx *transaction) ListBorrowers(_ context.Context, kind catalogstore.BorrowerKind) ([]catalogstore.BorrowerRecord, error) {
	byID, err := tx.borrowersOf(kind)
	if err != nil {
		return nil, err
	}

	borrowers := make([]catalogstore.BorrowerRecord, 0, len(byID))
	for _, userID := range tx.state.borrowerOrder[kind] {
		borrowers = append(borrowers, cloneBorrower(byID[userID]))
	}

	return borrowers, nil
}

func (tx *transaction) CountAll(_ context.Context) (catalogstore.Counts, error) {
	return catalogstore.Counts{
		Books:    len(tx.state.books),
		Students: len(tx.state.borrowers[catalogstore.KindStudent]),
		Pupils:   len(tx.state.borrowers[catalogstore.KindPupil]),
	}, nil
}

func (tx *transaction) InsertBook(_ context.Context, book catalogstore.BookRecord) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	if _, ok := tx.state.books[book.ISBN]; ok {
		return catalogstore.ErrDuplicateKey
	}

	tx.state.books[book.ISBN] = book
	tx.state.bookOrder = append(tx.state.bookOrder, book.ISBN)

	return nil
}

func (tx *transaction) UpsertBook(ctx context.Context, book catalogstore.BookRecord) (catalogstore.UpsertOutcome, error) {
	if tx.readOnly {
		return 0, catalogstore.ErrReadOnlyTransaction
	}

	if _, ok := tx.state.books[book.ISBN]; ok {
		tx.state.books[book.ISBN] = book
		return catalogstore.Updated, nil
	}

	if err := tx.InsertBook(ctx, book); err != nil {
		return 0, err
	}

	return catalogstore.Created, nil
}

func (tx *transaction) UpdateBookCopies(_ context.Context, isbn string, copies int) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	book, ok := tx.state.books[isbn]
	if !ok {
		return catalogstore.ErrBookNotFound
	}

	if copies < 0 {
		return catalogstore.ErrInvalidRecord
	}

	book.Copies = copies
	tx.state.books[isbn] = book

	return nil
}

func (tx *transaction) InsertBorrower(_ context.Context, borrower catalogstore.BorrowerRecord) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	byID, err := tx.borrowersOf(borrower.Kind)
	if err != nil {
		return err
	}

	if _, ok := byID[borrower.UserID]; ok {
		return catalogstore.ErrDuplicateKey
	}

	borrower.BorrowedISBNs = []string{}
	byID[borrower.UserID] = borrower
	tx.state.borrowerOrder[borrower.Kind] = append(tx.state.borrowerOrder[borrower.Kind], borrower.UserID)

	return nil
}

func (tx *transaction) UpsertBorrower(
	ctx context.Context,
	borrower catalogstore.BorrowerRecord,
) (catalogstore.UpsertOutcome, error) {

	if tx.readOnly {
		return 0, catalogstore.ErrReadOnlyTransaction
	}

	byID, err := tx.borrowersOf(borrower.Kind)
	if err != nil {
		return 0, err
	}

	if existing, ok := byID[borrower.UserID]; ok {
		borrower.BorrowedISBNs = existing.BorrowedISBNs
		byID[borrower.UserID] = borrower

		return catalogstore.Updated, nil
	}

	if err = tx.InsertBorrower(ctx, borrower); err != nil {
		return 0, err
	}

	return catalogstore.Created, nil
}

func (tx *transaction) AddHolding(_ context.Context, kind catalogstore.BorrowerKind, userID string, isbn string) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	borrower, byID, err := tx.borrowerForWrite(kind, userID)
	if err != nil {
		return err
	}

	if _, ok := tx.state.books[isbn]; !ok {
		return catalogstore.ErrBookNotFound
	}

	if borrower.Holds(isbn) {
		return catalogstore.ErrDuplicateKey
	}

	borrower.BorrowedISBNs = append(borrower.BorrowedISBNs, isbn)
	slices.Sort(borrower.BorrowedISBNs)
	byID[userID] = borrower

	return nil
}

func (tx *transaction) RemoveHolding(_ context.Context, kind catalogstore.BorrowerKind, userID string, isbn string) error {
	if tx.readOnly {
		return catalogstore.ErrReadOnlyTransaction
	}

	borrower, byID, err := tx.borrowerForWrite(kind, userID)
	if err != nil {
		return err
	}

	idx := slices.Index(borrower.BorrowedISBNs, isbn)
	if idx < 0 {
		return catalogstore.ErrHoldingNotFound
	}

	borrower.BorrowedISBNs = slices.Delete(borrower.BorrowedISBNs, idx, idx+1)
	byID[userID] = borrower

	return nil
}

func (tx *transaction) ClearHoldings(_ context.Context, kind catalogstore.BorrowerKind, userID string) (int, error) {
	if tx.readOnly {
		return 0, catalogstore.ErrReadOnlyTransaction
	}

	borrower, byID, err := tx.borrowerForWrite(kind, userID)
	if err != nil {
		return 0, err
	}

	cleared := len(borrower.BorrowedISBNs)
	borrower.BorrowedISBNs = []string{}
	byID[userID] = borrower

	return cleared, nil
}

func (tx *transaction) DeleteAll(ctx context.Context) (catalogstore.Counts, error) {
	if tx.readOnly {
		return catalogstore.Counts{}, catalogstore.ErrReadOnlyTransaction
	}

	counts, err := tx.CountAll(ctx)
	if err != nil {
		return catalogstore.Counts{}, err
	}

	tx.state = newState()

	return counts, nil
}

func (tx *transaction) borrowersOf(kind catalogstore.BorrowerKind) (map[string]catalogstore.BorrowerRecord, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	return tx.state.borrowers[kind], nil
}

func (tx *transaction) borrowerForWrite(
	kind catalogstore.BorrowerKind,
	userID string,
) (catalogstore.BorrowerRecord, map[string]catalogstore.BorrowerRecord, error) {

	byID, err := tx.borrowersOf(kind)
	if err != nil {
		return catalogstore.BorrowerRecord{}, nil, err
	}

	borrower, ok := byID[userID]
	if !ok {
		return catalogstore.BorrowerRecord{}, nil, catalogstore.ErrBorrowerNotFound
	}

	return borrower, byID, nil
}
