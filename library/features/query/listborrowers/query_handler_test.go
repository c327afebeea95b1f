package listborrowers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/listborrowers"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/core"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper"                //nolint:revive
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper/catalogwrapper" //nolint:revive
)

func Test_QueryHandler_Handle_ReturnsBothCategories(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := listborrowers.NewQueryHandler(store)

	// arrange
	isbn := GivenBookWasAdded(ctx, t, store, 1, LabelForChildren)
	studentID := GivenStudentWasRegistered(ctx, t, store)
	pupilID := GivenPupilWasRegistered(ctx, t, store, 11)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindPupil, pupilID, isbn)

	// act
	result, err := handler.Handle(ctx, listborrowers.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Students, 1)
	require.Len(t, result.Pupils, 1)
	assert.Equal(t, studentID, result.Students[0].ID())
	assert.Empty(t, result.Students[0].HeldISBNs())
	assert.Equal(t, pupilID, result.Pupils[0].ID())
	assert.Equal(t, 11, result.Pupils[0].Age)
	assert.Equal(t, []string{isbn}, result.Pupils[0].HeldISBNs())
}

func Test_QueryHandler_Handle_NoBorrowers(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := listborrowers.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, listborrowers.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Students)
	assert.Empty(t, result.Pupils)
}

func Test_ProjectBorrowers_RejectsMisfiledBorrower(t *testing.T) {
	// act
	_, err := listborrowers.ProjectBorrowers([]catalogstore.BorrowerRecord{FixtureStudent("10001")}, nil)

	// assert
	assert.ErrorIs(t, err, core.ErrCategoryMismatch)
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
