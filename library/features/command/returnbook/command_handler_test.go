package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper"                //nolint:revive
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper/catalogwrapper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := returnbook.NewCommandHandler(store)

	// arrange
	bookISBN := GivenBookWasAdded(ctx, t, store, 1, LabelGeneral)
	studentID := GivenStudentWasRegistered(ctx, t, store)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindStudent, studentID, bookISBN)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(studentID, bookISBN))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RemainingCopies)
	assert.Equal(t, 1, CopiesOf(ctx, t, store, bookISBN))
	assert.Empty(t, HeldISBNsOf(ctx, t, store, catalogstore.KindStudent, studentID))
}

func Test_CommandHandler_Handle_Idempotent_NotHeld(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := returnbook.NewCommandHandler(store)

	// arrange
	bookISBN := GivenBookWasAdded(ctx, t, store, 4, LabelGeneral)
	studentID := GivenStudentWasRegistered(ctx, t, store)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(studentID, bookISBN))

	// assert
	assert.ErrorIs(t, err, core.ErrNotHeld)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 4, result.RemainingCopies)
	assert.Equal(t, 4, CopiesOf(ctx, t, store, bookISBN), "Should not add a copy")
}

func Test_CommandHandler_Handle_BorrowThenReturn_RestoresCatalog(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	borrowHandler := borrowbook.NewCommandHandler(store)
	returnHandler := returnbook.NewCommandHandler(store)

	// arrange
	bookISBN := GivenBookWasAdded(ctx, t, store, 2, LabelForChildren)
	pupilID := GivenPupilWasRegistered(ctx, t, store, 9)
	countsBefore := CountsOf(ctx, t, store)

	// act
	_, borrowErr := borrowHandler.Handle(ctx, borrowbook.BuildCommand(pupilID, bookISBN))
	_, returnErr := returnHandler.Handle(ctx, returnbook.BuildCommand(pupilID, bookISBN))

	// assert
	require.NoError(t, borrowErr)
	require.NoError(t, returnErr)
	assert.Equal(t, 2, CopiesOf(ctx, t, store, bookISBN))
	assert.Empty(t, HeldISBNsOf(ctx, t, store, catalogstore.KindPupil, pupilID))
	assert.Equal(t, countsBefore, CountsOf(ctx, t, store))
}

func Test_CommandHandler_Handle_UnknownBook(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := returnbook.NewCommandHandler(store)

	// arrange
	studentID := GivenStudentWasRegistered(ctx, t, store)

	// act
	_, err := handler.Handle(ctx, returnbook.BuildCommand(studentID, "978-0000000000"))

	// assert
	assert.ErrorIs(t, err, catalogstore.ErrBookNotFound)
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
