package swapbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/swapbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper"                //nolint:revive
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper/catalogwrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := swapbook.NewCommandHandler(store)

	// arrange
	held := GivenBookWasAdded(ctx, t, store, 1, LabelForChildren)
	wanted := GivenBookWasAdded(ctx, t, store, 1, LabelForChildren)
	pupilID := GivenPupilWasRegistered(ctx, t, store, 8)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindPupil, pupilID, held)

	// act
	result, err := handler.Handle(ctx, swapbook.BuildCommand(pupilID, held, wanted))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.ReturnedBookCopies)
	assert.Equal(t, 0, result.BorrowedBookCopies)
	assert.Equal(t, 1, CopiesOf(ctx, t, store, held))
	assert.Equal(t, 0, CopiesOf(ctx, t, store, wanted))
	assert.Equal(t, []string{wanted}, HeldISBNsOf(ctx, t, store, catalogstore.KindPupil, pupilID))
}

func Test_CommandHandler_Handle_SameBook(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := swapbook.NewCommandHandler(store)

	// arrange
	held := GivenBookWasAdded(ctx, t, store, 1, LabelGeneral)
	studentID := GivenStudentWasRegistered(ctx, t, store)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindStudent, studentID, held)

	// act
	result, err := handler.Handle(ctx, swapbook.BuildCommand(studentID, held, held))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.ReturnedBookCopies)
	assert.Equal(t, 0, result.BorrowedBookCopies)
	assert.Equal(t, 0, CopiesOf(ctx, t, store, held))
	assert.Equal(t, []string{held}, HeldISBNsOf(ctx, t, store, catalogstore.KindStudent, studentID))
}

func Test_CommandHandler_Handle_Refusals_LeaveCatalogUnchanged(t *testing.T) {
	testCases := []struct {
		name         string
		holdOld      bool
		wantedCopies int
		wantedLabel  string
		expectedErr  error
	}{
		{name: "old book not held", holdOld: false, wantedCopies: 1, wantedLabel: LabelForChildren, expectedErr: core.ErrNotHeld},
		{name: "label mismatch", holdOld: true, wantedCopies: 1, wantedLabel: LabelGeneral, expectedErr: core.ErrLabelMismatch},
		{name: "out of stock", holdOld: true, wantedCopies: 0, wantedLabel: LabelForChildren, expectedErr: core.ErrOutOfStock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			ctx, store := setupTestEnvironment(t)
			handler := swapbook.NewCommandHandler(store)

			// arrange
			old := GivenBookWasAdded(ctx, t, store, 2, LabelForChildren)
			wanted := GivenBookWasAdded(ctx, t, store, tc.wantedCopies, tc.wantedLabel)
			pupilID := GivenPupilWasRegistered(ctx, t, store, 8)

			expectedHeld := []string{}
			if tc.holdOld {
				GivenBookIsHeld(ctx, t, store, catalogstore.KindPupil, pupilID, old)
				expectedHeld = []string{old}
			}

			oldCopies := CopiesOf(ctx, t, store, old)

			// act
			_, err := handler.Handle(ctx, swapbook.BuildCommand(pupilID, old, wanted))

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, oldCopies, CopiesOf(ctx, t, store, old))
			assert.Equal(t, tc.wantedCopies, CopiesOf(ctx, t, store, wanted))
			assert.Equal(t, expectedHeld, HeldISBNsOf(ctx, t, store, catalogstore.KindPupil, pupilID))
		})
	}
}

func Test_CommandHandler_Handle_UnknownNewBook(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := swapbook.NewCommandHandler(store)

	// arrange
	held := GivenBookWasAdded(ctx, t, store, 1, LabelGeneral)
	studentID := GivenStudentWasRegistered(ctx, t, store)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindStudent, studentID, held)

	// act
	_, err := handler.Handle(ctx, swapbook.BuildCommand(studentID, held, "978-0000000000"))

	// assert
	assert.ErrorIs(t, err, catalogstore.ErrBookNotFound)
	assert.Equal(t, []string{held}, HeldISBNsOf(ctx, t, store, catalogstore.KindStudent, studentID))
}

func setupTestEnvironment(t *testing.T) (context.Context, catalogstore.Store) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	wrapper := CreateWrapperWithTestConfig(t)

	t.Cleanup(func() {
		cancel()
		wrapper.Close()
	})

	return ctx, wrapper.GetCatalogStore()
}
