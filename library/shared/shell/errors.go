package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

// ErrorClass groups errors by how a caller should react to them.
type ErrorClass string

const (
	// ClassNone is returned for a nil error.
	ClassNone ErrorClass = "none"

	// ClassInvalidInput covers malformed identifiers, invalid records, and references to missing entities.
	ClassInvalidInput ErrorClass = "invalid_input"

	// ClassRefused covers business-rule refusals. Nothing was changed.
	ClassRefused ErrorClass = "refused"

	// ClassIntegrity covers snapshot and import data that cannot be trusted.
	ClassIntegrity ErrorClass = "integrity"

	// ClassStorage covers unexpected failures of the catalog store.
	ClassStorage ErrorClass = "storage"

	// ClassCanceled covers context cancellation and deadlines.
	ClassCanceled ErrorClass = "canceled"
)

// ErrInvalidInput is returned for input that is rejected before any domain rule applies.
var ErrInvalidInput = errors.New("invalid input")

var invalidInputErrors = []error{
	ErrInvalidInput,
	core.ErrInvalidIdentifier,
	core.ErrUnknownCategory,
	core.ErrCategoryMismatch,
	core.ErrUnknownLabel,
	core.ErrInvalidBook,
	core.ErrInvalidBorrower,
	catalogstore.ErrBookNotFound,
	catalogstore.ErrBorrowerNotFound,
	catalogstore.ErrDuplicateKey,
	catalogstore.ErrInvalidRecord,
}

// ClassifyError maps err to its ErrorClass. Errors this package does not know are storage failures.
func ClassifyError(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case IsCancellationError(err) || IsTimeoutError(err):
		return ClassCanceled
	case IsRefusal(err):
		return ClassRefused
	case errors.Is(err, exchangeformat.ErrMalformedSnapshot):
		return ClassIntegrity
	}

	for _, target := range invalidInputErrors {
		if errors.Is(err, target) {
			return ClassInvalidInput
		}
	}

	return ClassStorage
}

// IsRefusal reports whether err is a business-rule refusal.
func IsRefusal(err error) bool {
	return errors.Is(err, core.ErrRefused)
}

// IsCancellationError checks if the error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if the error is due to a context deadline being exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError checks if the error is due to conflicting concurrent transactions.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, catalogstore.ErrConcurrencyConflict)
}
