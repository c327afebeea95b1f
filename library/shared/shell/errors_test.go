package shell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
)

func Test_ClassifyError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected shell.ErrorClass
	}{
		{name: "nil", err: nil, expected: shell.ClassNone},
		{name: "invalid identifier", err: core.ErrInvalidIdentifier, expected: shell.ClassInvalidInput},
		{name: "unknown category", err: core.ErrUnknownCategory, expected: shell.ClassInvalidInput},
		{name: "category mismatch", err: core.ErrCategoryMismatch, expected: shell.ClassInvalidInput},
		{name: "invalid book", err: core.ErrInvalidBook, expected: shell.ClassInvalidInput},
		{name: "book not found", err: catalogstore.ErrBookNotFound, expected: shell.ClassInvalidInput},
		{name: "borrower not found", err: catalogstore.ErrBorrowerNotFound, expected: shell.ClassInvalidInput},
		{
			name:     "duplicate key with driver cause",
			err:      errors.Join(catalogstore.ErrDuplicateKey, errors.New("23505")),
			expected: shell.ClassInvalidInput,
		},
		{name: "age too young", err: core.ErrAgeTooYoung, expected: shell.ClassRefused},
		{name: "label mismatch", err: core.ErrLabelMismatch, expected: shell.ClassRefused},
		{name: "out of stock", err: core.ErrOutOfStock, expected: shell.ClassRefused},
		{name: "already held", err: core.ErrAlreadyHeld, expected: shell.ClassRefused},
		{name: "not held", err: core.ErrNotHeld, expected: shell.ClassRefused},
		{name: "malformed snapshot", err: exchangeformat.ErrMalformedSnapshot, expected: shell.ClassIntegrity},
		{name: "concurrency conflict", err: catalogstore.ErrConcurrencyConflict, expected: shell.ClassStorage},
		{name: "querying failed", err: catalogstore.ErrQueryingFailed, expected: shell.ClassStorage},
		{name: "unknown error", err: errors.New("boom"), expected: shell.ClassStorage},
		{name: "canceled", err: context.Canceled, expected: shell.ClassCanceled},
		{
			name:     "deadline exceeded wrapped in storage error",
			err:      errors.Join(catalogstore.ErrQueryingFailed, context.DeadlineExceeded),
			expected: shell.ClassCanceled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			class := shell.ClassifyError(tc.err)

			// assert
			assert.Equal(t, tc.expected, class)
		})
	}
}

func Test_StatusFor(t *testing.T) {
	assert.Equal(t, shell.StatusSuccess, shell.StatusFor(nil, false))
	assert.Equal(t, shell.StatusIdempotent, shell.StatusFor(core.ErrAlreadyHeld, true))
	assert.Equal(t, shell.StatusRefused, shell.StatusFor(core.ErrOutOfStock, false))
	assert.Equal(t, shell.StatusCanceled, shell.StatusFor(context.Canceled, false))
	assert.Equal(t, shell.StatusTimeout, shell.StatusFor(context.DeadlineExceeded, false))
	assert.Equal(t, shell.StatusConcurrencyConflict, shell.StatusFor(catalogstore.ErrConcurrencyConflict, false))
	assert.Equal(t, shell.StatusError, shell.StatusFor(catalogstore.ErrBookNotFound, false))
}
