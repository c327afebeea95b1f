// Package catalogstore provides the core abstractions and types of the lending catalog's storage layer.
//
// This package defines the contract that every catalog engine implements, the scalar records
// that cross the storage boundary, and the common error definitions.
//
// All mutations happen inside a unit of work: Store.RunInTransaction hands a Tx to a callback,
// and either every change made through that Tx becomes visible or none of them does.
// Store.View runs read-only callbacks, which engines may serve from a replica when the context
// carries EventualConsistency.
//
// Key types:
//   - Store: Opens transactions (RunInTransaction) and read-only views (View)
//   - Tx: Reads and writes books, borrowers, and the borrowing relation
//   - BookRecord, BorrowerRecord: Scalar DTOs, agnostic of the domain model of the client code
//   - Counts: Per-category record counts, as returned by DeleteAll
//
// Common usage pattern:
//
//	err := store.RunInTransaction(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
//		borrower, err := tx.FindBorrower(ctx, catalogstore.KindStudent, "20001")
//		if err != nil {
//			return err
//		}
//
//		book, err := tx.FindBook(ctx, "978-0132350884")
//		if err != nil {
//			return err
//		}
//
//		if err = tx.AddHolding(ctx, borrower.Kind, borrower.UserID, book.ISBN); err != nil {
//			return err
//		}
//
//		return tx.UpdateBookCopies(ctx, book.ISBN, book.Copies-1)
//	})
package catalogstore
