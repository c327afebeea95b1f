package helper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

const (
	LabelGeneral     = "general"
	LabelForChildren = "for-children"
)

// GivenUniqueISBN returns an ISBN-like natural key that is unique across test runs.
func GivenUniqueISBN(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewRandom()
	require.NoError(t, err, "error in arranging test data")

	return "978-" + id.String()[24:]
}

// GivenUniqueStudentID returns a random identifier of the student category.
func GivenUniqueStudentID(t testing.TB) string {
	t.Helper()

	return fmt.Sprintf("2%04d", rand.IntN(10000)) //nolint:gosec
}

// GivenUniquePupilID returns a random identifier of the pupil category.
func GivenUniquePupilID(t testing.TB) string {
	t.Helper()

	return fmt.Sprintf("1%04d", rand.IntN(10000)) //nolint:gosec
}

// FixtureBook returns a book record with the given ISBN, copies, and label.
func FixtureBook(isbn string, copies int, label string) catalogstore.BookRecord {
	return catalogstore.BookRecord{
		ISBN:   isbn,
		Title:  "Learning Domain-Driven Design",
		Author: "Vlad Khononov",
		Year:   2021,
		Copies: copies,
		Label:  label,
	}
}

// FixtureStudent returns a student record without held books.
func FixtureStudent(userID string) catalogstore.BorrowerRecord {
	return catalogstore.BorrowerRecord{
		Kind:          catalogstore.KindStudent,
		UserID:        userID,
		Name:          "Jane",
		Surname:       "Doe",
		Group:         "CS-1",
		BorrowedISBNs: []string{},
	}
}

// FixturePupil returns a pupil record of the given age without held books.
func FixturePupil(userID string, age int) catalogstore.BorrowerRecord {
	return catalogstore.BorrowerRecord{
		Kind:          catalogstore.KindPupil,
		UserID:        userID,
		Name:          "Tom",
		Surname:       "Sawyer",
		Group:         "2b",
		Age:           age,
		BorrowedISBNs: []string{},
	}
}

// GivenBookWasAdded stores a book with the given copies and label and returns its ISBN.
func GivenBookWasAdded(ctx context.Context, t testing.TB, store catalogstore.Store, copies int, label string) string {
	t.Helper()

	isbn := GivenUniqueISBN(t)
	err := store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		return tx.InsertBook(ctx, FixtureBook(isbn, copies, label))
	})
	require.NoError(t, err, "error in arranging test data")

	return isbn
}

// GivenStudentWasRegistered stores a student and returns its identifier.
func GivenStudentWasRegistered(ctx context.Context, t testing.TB, store catalogstore.Store) string {
	t.Helper()

	return givenBorrowerWasRegistered(ctx, t, store, func() catalogstore.BorrowerRecord {
		return FixtureStudent(GivenUniqueStudentID(t))
	})
}

// GivenPupilWasRegistered stores a pupil of the given age and returns its identifier.
func GivenPupilWasRegistered(ctx context.Context, t testing.TB, store catalogstore.Store, age int) string {
	t.Helper()

	return givenBorrowerWasRegistered(ctx, t, store, func() catalogstore.BorrowerRecord {
		return FixturePupil(GivenUniquePupilID(t), age)
	})
}

func givenBorrowerWasRegistered(
	ctx context.Context,
	t testing.TB,
	store catalogstore.Store,
	fixture func() catalogstore.BorrowerRecord,
) string {

	t.Helper()

	// random identifiers may collide, so retry a few times
	for range 10 {
		borrower := fixture()

		err := store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
			return tx.InsertBorrower(ctx, borrower)
		})
		if err == nil {
			return borrower.UserID
		}

		require.ErrorIs(t, err, catalogstore.ErrDuplicateKey, "error in arranging test data")
	}

	require.FailNow(t, "error in arranging test data: no free borrower identifier")

	return ""
}

// GivenBookIsHeld adds isbn to the held set of the borrower and takes one copy of the book.
func GivenBookIsHeld(
	ctx context.Context,
	t testing.TB,
	store catalogstore.Store,
	kind catalogstore.BorrowerKind,
	userID string,
	isbn string,
) {

	t.Helper()

	err := store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		book, err := tx.FindBook(ctx, isbn)
		if err != nil {
			return err
		}

		if err = tx.AddHolding(ctx, kind, userID, isbn); err != nil {
			return err
		}

		return tx.UpdateBookCopies(ctx, isbn, book.Copies-1)
	})
	require.NoError(t, err, "error in arranging test data")
}

// BookOf reads a book.
func BookOf(ctx context.Context, t testing.TB, store catalogstore.Store, isbn string) catalogstore.BookRecord {
	t.Helper()

	var book catalogstore.BookRecord
	err := store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		var err error
		book, err = tx.FindBook(ctx, isbn)

		return err
	})
	require.NoError(t, err, "error in reading test data")

	return book
}

// CopiesOf reads the current copy count of a book.
func CopiesOf(ctx context.Context, t testing.TB, store catalogstore.Store, isbn string) int {
	t.Helper()

	return BookOf(ctx, t, store, isbn).Copies
}

// HeldISBNsOf reads the sorted held set of a borrower.
func HeldISBNsOf(
	ctx context.Context,
	t testing.TB,
	store catalogstore.Store,
	kind catalogstore.BorrowerKind,
	userID string,
) []string {

	t.Helper()

	var held []string
	err := store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		borrower, err := tx.FindBorrower(ctx, kind, userID)
		held = borrower.BorrowedISBNs

		return err
	})
	require.NoError(t, err, "error in reading test data")

	sort.Strings(held)

	return held
}

// CountsOf reads the record counts of the catalog.
func CountsOf(ctx context.Context, t testing.TB, store catalogstore.Store) catalogstore.Counts {
	t.Helper()

	var counts catalogstore.Counts
	err := store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		var err error
		counts, err = tx.CountAll(ctx)

		return err
	})
	require.NoError(t, err, "error in reading test data")

	return counts
}
