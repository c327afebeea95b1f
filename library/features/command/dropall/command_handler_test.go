package dropall_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/dropall"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper"                //nolint:revive
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper/catalogwrapper" //nolint:revive
)

func Test_CommandHandler_Handle_DeletesEverything(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := dropall.NewCommandHandler(store)

	// arrange
	isbn := GivenBookWasAdded(ctx, t, store, 2, LabelForChildren)
	GivenBookWasAdded(ctx, t, store, 1, LabelGeneral)
	GivenStudentWasRegistered(ctx, t, store)
	pupilID := GivenPupilWasRegistered(ctx, t, store, 9)
	GivenBookIsHeld(ctx, t, store, catalogstore.KindPupil, pupilID, isbn)

	// act
	result, err := handler.Handle(ctx, dropall.BuildCommand())

	// assert
	require.NoError(t, err)
	assert.Equal(t, catalogstore.Counts{Books: 2, Students: 1, Pupils: 1}, result.Counts)
	assert.Equal(t, catalogstore.Counts{}, CountsOf(ctx, t, store))
}

func Test_CommandHandler_Handle_EmptyCatalog(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := dropall.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, dropall.BuildCommand())

	// assert
	require.NoError(t, err)
	assert.Equal(t, catalogstore.Counts{}, result.Counts)
}

func Test_CommandHandler_Handle_Canceled_LeavesCatalogUnchanged(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := dropall.NewCommandHandler(store)

	// arrange
	GivenBookWasAdded(ctx, t, store, 1, LabelGeneral)
	canceledCtx, cancel := context.WithCancel(ctx)
	cancel()

	// act
	_, err := handler.Handle(canceledCtx, dropall.BuildCommand())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, CountsOf(ctx, t, store).Books)
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
