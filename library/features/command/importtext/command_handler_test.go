package importtext_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/features/command/importtext"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper"                //nolint:revive
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper/catalogwrapper" //nolint:revive
)

func Test_CommandHandler_Handle_CreatesBooks(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := importtext.NewCommandHandler(store)

	// arrange
	data := []byte("Momo,for-children\nDune,general\n")

	// act
	result, err := handler.Handle(ctx, importtext.BuildCommand(data))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)

	books := listBooks(ctx, t, store)
	require.Len(t, books, 2)

	for _, book := range books {
		assert.Len(t, book.ISBN, 20)
		assert.Equal(t, "Unknown", book.Author)
		assert.Equal(t, 1, book.Year)
		assert.Equal(t, 1, book.Copies)
	}

	labels := map[string]string{books[0].Title: books[0].Label, books[1].Title: books[1].Label}
	assert.Equal(t, map[string]string{"Momo": LabelForChildren, "Dune": LabelGeneral}, labels)
}

func Test_CommandHandler_Handle_UnknownLabelFallsBackToGeneral(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := importtext.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, importtext.BuildCommand([]byte("Faust,for adults\n")))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	books := listBooks(ctx, t, store)
	require.Len(t, books, 1)
	assert.Equal(t, LabelGeneral, books[0].Label)
}

func Test_CommandHandler_Handle_SkipsMalformedLines(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	logHandler := NewLogHandlerSpy(false)
	handler := importtext.NewCommandHandler(store, importtext.WithLogger(slog.New(logHandler)))

	// arrange
	data := []byte("Momo,for-children\nno separator here\n\n   \nDune,general\r\n")

	// act
	result, err := handler.Handle(ctx, importtext.BuildCommand(data))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, CountsOf(ctx, t, store).Books)

	assert.True(t, logHandler.
		HasLogWithMessage(slog.LevelWarn, shell.LogMsgRecordSkipped).
		WithAttr(shell.LogAttrRecord, "line 2").
		Assert(), "Should log the skipped line")
}

func Test_CommandHandler_Handle_SkipsInvalidBookAndContinues(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	logHandler := NewLogHandlerSpy(false)
	handler := importtext.NewCommandHandler(store, importtext.WithLogger(slog.New(logHandler)))

	// arrange
	data := []byte("Momo,for-children\n" + strings.Repeat("x", 256) + ",general\nDune,general\n")

	// act
	result, err := handler.Handle(ctx, importtext.BuildCommand(data))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, CountsOf(ctx, t, store).Books)

	assert.True(t, logHandler.
		HasLogWithMessage(slog.LevelWarn, shell.LogMsgRecordSkipped).
		WithAttr(shell.LogAttrRecord, "line 2").
		Assert(), "Should log the skipped book")
}

func Test_CommandHandler_Handle_TrimsTitles(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := importtext.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, importtext.BuildCommand([]byte("  Momo  ,for-children\n")))

	// assert
	require.NoError(t, err)

	books := listBooks(ctx, t, store)
	require.Len(t, books, 1)
	assert.Equal(t, "Momo", books[0].Title)
}

func Test_CommandHandler_Handle_EmptyInput(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := importtext.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, importtext.BuildCommand(nil))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Skipped)
}

func Test_CommandHandler_Handle_Canceled_ReturnsPartialResult(t *testing.T) {
	// setup
	ctx, store := setupTestEnvironment(t)
	handler := importtext.NewCommandHandler(store)

	// arrange
	canceledCtx, cancel := context.WithCancel(ctx)
	cancel()

	// act
	result, err := handler.Handle(canceledCtx, importtext.BuildCommand([]byte("Momo,for-children\nbroken\n")))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func listBooks(ctx context.Context, t *testing.T, store catalogstore.Store) []catalogstore.BookRecord {
	t.Helper()

	var books []catalogstore.BookRecord
	err := store.View(ctx, func(ctx context.Context, tx catalogstore.Tx) error {
		var listErr error
		books, listErr = tx.ListBooks(ctx)

		return listErr
	})
	require.NoError(t, err, "error in reading test data")

	return books
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
