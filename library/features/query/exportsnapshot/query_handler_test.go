package exportsnapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/importsnapshot"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/query/exportsnapshot"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/exchangeformat"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper"                //nolint:revive
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper/catalogwrapper" //nolint:revive
)

func Test_QueryHandler_Handle_ContainsEverything(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := exportsnapshot.NewQueryHandler(store)

	// arrange
	isbn := GivenBookWasAdded(ctx, t, store, 2, LabelForChildren)
	studentID := GivenStudentWasRegistered(ctx, t, store)
	pupilID := GivenPupilWasRegistered(ctx, t, store, 8)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindPupil, pupilID, isbn)

	// act
	result, err := handler.Handle(ctx, exportsnapshot.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, catalogstore.Counts{Books: 1, Students: 1, Pupils: 1}, result.Counts)

	snapshot, err := exchangeformat.DecodeSnapshot(result.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, exchangeformat.SnapshotVersion, snapshot.Version)
	require.Len(t, snapshot.Books, 1)
	assert.Equal(t, 1, snapshot.Books[0].Copies)
	require.Len(t, snapshot.Students, 1)
	assert.Equal(t, studentID, snapshot.Students[0].UserID)
	assert.Empty(t, snapshot.Students[0].Borrowed)
	require.Len(t, snapshot.Pupils, 1)
	assert.Equal(t, 8, snapshot.Pupils[0].Age)
	assert.Equal(t, []string{isbn}, snapshot.Pupils[0].Borrowed)
}

func Test_QueryHandler_Handle_RoundTripRestoresCatalog(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := exportsnapshot.NewQueryHandler(store)
	importer := importsnapshot.NewCommandHandler(store)

	// arrange
	isbn := GivenBookWasAdded(ctx, t, store, 3, LabelGeneral)
	studentID := GivenStudentWasRegistered(ctx, t, store)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindStudent, studentID, isbn)

	exported, err := handler.Handle(ctx, exportsnapshot.BuildQuery())
	require.NoError(t, err, "error in arranging test data")

	// act
	imported, err := importer.Handle(ctx, importsnapshot.BuildCommand(exported.Snapshot, true))

	// assert
	require.NoError(t, err)
	assert.Equal(t, importsnapshot.UpsertCounts{Created: 1}, imported.Books)
	assert.Equal(t, importsnapshot.UpsertCounts{Created: 1}, imported.Students)
	assert.Equal(t, 2, CopiesOf(ctx, t, store, isbn))
	assert.Equal(t, []string{isbn}, HeldISBNsOf(ctx, t, store, catalogstore.KindStudent, studentID))

	again, err := handler.Handle(ctx, exportsnapshot.BuildQuery())
	require.NoError(t, err)
	assert.Equal(t, exported.Snapshot, again.Snapshot, "Should export the same snapshot after the round trip")
}

func Test_QueryHandler_Handle_EmptyCatalog(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := exportsnapshot.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, exportsnapshot.BuildQuery())

	// assert
	require.NoError(t, err)
	snapshot, err := exchangeformat.DecodeSnapshot(result.Snapshot)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Books)
	assert.Empty(t, snapshot.Students)
	assert.Empty(t, snapshot.Pupils)
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
