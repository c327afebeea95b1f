package observable_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/observable"
	. "github.com/AntonStoeckl/lending-catalog-go/testutil/helper" //nolint:revive
)

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	expectedResult := mockQueryResult{Value: "test_value"}
	handler := newMockQueryHandler(expectedResult, nil)
	metricsCollector := NewMetricsCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[mockQuery, mockQueryResult](
		handler,
		observable.WithQueryMetrics[mockQuery, mockQueryResult](metricsCollector),
		observable.WithQueryContextualLogging[mockQuery, mockQueryResult](slog.New(logHandler)),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	result, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expectedResult, result)
	assert.Equal(t, 1, handler.calls, "Should call handler once")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithLabel(shell.LogAttrQueryType, "TestQuery").
		WithStatus(shell.StatusSuccess).
		Assert(), "Should record the call")
	assert.True(t, logHandler.HasLog(slog.LevelDebug, shell.LogMsgQueryStarted))
	assert.True(t, logHandler.HasLogWithMessage(slog.LevelInfo, shell.LogMsgQueryCompleted).WithDurationMS().Assert())
}

func Test_QueryWrapper_Handle_Error(t *testing.T) {
	// arrange
	handler := newMockQueryHandler(mockQueryResult{}, catalogstore.ErrBorrowerNotFound)
	metricsCollector := NewMetricsCollectorSpy(true)
	logHandler := NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[mockQuery, mockQueryResult](
		handler,
		observable.WithQueryMetrics[mockQuery, mockQueryResult](metricsCollector),
		observable.WithQueryLogging[mockQuery, mockQueryResult](slog.New(logHandler)),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	result, err := wrapper.Handle(context.Background(), mockQuery{})

	// assert
	assert.ErrorIs(t, err, catalogstore.ErrBorrowerNotFound, "Should return the original error")
	assert.Equal(t, mockQueryResult{}, result)
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithStatus(shell.StatusError).
		Assert(), "Should record the failed call")
	assert.True(t, logHandler.HasLogWithMessage(slog.LevelWarn, shell.LogMsgQueryFailed).
		WithAttr(shell.LogAttrErrorClass, string(shell.ClassInvalidInput)).
		Assert(), "Should log invalid input at warn level")
}
