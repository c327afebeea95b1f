package shell

import (
	"context"
	"errors"
	"slices"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

// ErrUnsupportedEvent is returned by ApplyEvent for an event type it cannot write.
var ErrUnsupportedEvent = errors.New("unsupported domain event")

// LoadBorrower classifies identifier and loads the borrower it names.
// Inside Store.RunInTransaction the borrower row stays locked until the transaction ends.
func LoadBorrower(ctx context.Context, tx catalogstore.Tx, identifier string) (core.Borrower, error) {
	category, err := core.Classify(identifier)
	if err != nil {
		return nil, err
	}

	kind, err := KindFor(category)
	if err != nil {
		return nil, err
	}

	record, err := tx.FindBorrower(ctx, kind, identifier)
	if err != nil {
		return nil, err
	}

	return BorrowerFromRecord(record)
}

// LoadBooks loads the books with the given ISBNs in ascending ISBN order, each one once.
// Loading in a fixed order keeps concurrent transactions from locking book rows in opposite orders.
func LoadBooks(ctx context.Context, tx catalogstore.Tx, isbns ...string) (map[string]core.Book, error) {
	ordered := slices.Clone(isbns)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	books := make(map[string]core.Book, len(ordered))

	for _, isbn := range ordered {
		record, err := tx.FindBook(ctx, isbn)
		if err != nil {
			return nil, err
		}

		book, err := BookFromRecord(record)
		if err != nil {
			return nil, err
		}

		books[isbn] = book
	}

	return books, nil
}

// ApplyEvent writes the state change described by event.
func ApplyEvent(ctx context.Context, tx catalogstore.Tx, event core.DomainEvent) error {
	switch e := event.(type) {
	case core.BookBorrowed:
		return applyBookBorrowed(ctx, tx, e)

	case core.BookReturned:
		return applyBookReturned(ctx, tx, e)

	case core.BookSwapped:
		if e.Returned.ISBN == e.Borrowed.ISBN {
			return nil
		}

		if err := applyBookReturned(ctx, tx, e.Returned); err != nil {
			return err
		}

		return applyBookBorrowed(ctx, tx, e.Borrowed)

	case core.AllBooksReturned:
		for _, returned := range e.Returns {
			if err := applyBookReturned(ctx, tx, returned); err != nil {
				return err
			}
		}

		return nil

	default:
		return ErrUnsupportedEvent
	}
}

func applyBookBorrowed(ctx context.Context, tx catalogstore.Tx, e core.BookBorrowed) error {
	kind, err := KindFor(e.Category)
	if err != nil {
		return err
	}

	if err = tx.AddHolding(ctx, kind, e.BorrowerID, e.ISBN); err != nil {
		return err
	}

	return tx.UpdateBookCopies(ctx, e.ISBN, e.RemainingCopies)
}

func applyBookReturned(ctx context.Context, tx catalogstore.Tx, e core.BookReturned) error {
	kind, err := KindFor(e.Category)
	if err != nil {
		return err
	}

	if err = tx.RemoveHolding(ctx, kind, e.BorrowerID, e.ISBN); err != nil {
		return err
	}

	return tx.UpdateBookCopies(ctx, e.ISBN, e.RemainingCopies)
}
