package returnbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

const isbn = "978-3-16-148410-0"

func Test_Decide_Success(t *testing.T) {
	// arrange
	pupil, err := core.BuildPupil("10001", "Tom", "Sawyer", "2b", 8, []string{isbn})
	require.NoError(t, err, "error in arranging test data")

	book, err := core.BuildBook(isbn, "The Gruffalo", "Julia Donaldson", 1999, 0, core.LabelForChildren)
	require.NoError(t, err, "error in arranging test data")

	// act
	result := returnbook.Decide(returnbook.State{Borrower: pupil, Book: book}, returnbook.BuildCommand(pupil.ID(), isbn))

	// assert
	assert.True(t, result.HasEventToApply())
	assert.Equal(t, core.BuildBookReturned(core.CategoryPupil, "10001", isbn, 1), result.Event)
}

func Test_Decide_Idempotent_NotHeld(t *testing.T) {
	// arrange
	student, err := core.BuildStudent("20001", "Jane", "Doe", "CS-1", []string{"978-other"})
	require.NoError(t, err, "error in arranging test data")

	book, err := core.BuildBook(isbn, "Dune", "Frank Herbert", 1965, 3, core.LabelGeneral)
	require.NoError(t, err, "error in arranging test data")

	// act
	result := returnbook.Decide(returnbook.State{Borrower: student, Book: book}, returnbook.BuildCommand(student.ID(), isbn))

	// assert
	assert.False(t, result.HasEventToApply())
	assert.True(t, result.IsIdempotent())
	assert.ErrorIs(t, result.HasError(), core.ErrNotHeld)
}
