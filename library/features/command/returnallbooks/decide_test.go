package returnallbooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/returnallbooks"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
)

func Test_Decide_ReturnsEveryHeldBook(t *testing.T) {
	// arrange
	borrower, err := core.BuildPupil("10001", "Tom", "Sawyer", "2b", 9, []string{"978-2", "978-1"})
	require.NoError(t, err, "error in arranging test data")

	state := returnallbooks.State{
		Borrower: borrower,
		Books: map[string]core.Book{
			"978-1": {ISBN: "978-1", Copies: 0, Label: core.LabelForChildren},
			"978-2": {ISBN: "978-2", Copies: 4, Label: core.LabelForChildren},
		},
	}

	// act
	result := returnallbooks.Decide(state, returnallbooks.BuildCommand("10001"))

	// assert
	require.True(t, result.HasEventToApply())
	assert.Equal(t, core.BuildAllBooksReturned(core.CategoryPupil, "10001", []core.BookReturned{
		core.BuildBookReturned(core.CategoryPupil, "10001", "978-1", 1),
		core.BuildBookReturned(core.CategoryPupil, "10001", "978-2", 5),
	}), result.Event)
}

func Test_Decide_NothingHeld_IsIdempotent(t *testing.T) {
	// arrange
	borrower, err := core.BuildStudent("20001", "Jane", "Doe", "CS-1", nil)
	require.NoError(t, err, "error in arranging test data")

	// act
	result := returnallbooks.Decide(returnallbooks.State{Borrower: borrower}, returnallbooks.BuildCommand("20001"))

	// assert
	assert.False(t, result.HasEventToApply())
	assert.True(t, result.IsIdempotent())
	assert.NoError(t, result.HasError())
}
