package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore/oteladapters"
)

// recordingLogger keeps every emitted record.
type recordingLogger struct {
	embedded.Logger

	mu      sync.Mutex
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record.Clone())
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func attributesOf(record log.Record) map[string]log.Value {
	attrs := make(map[string]log.Value)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

func Test_SlogBridgeLogger_WithHandler_LogsAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "executed sql for: select book", "duration_ms", 1.5)
	logger.InfoContext(ctx, "command handler succeeded", "command_type", "BorrowBook")
	logger.WarnContext(ctx, "skipped record", "record", "line 3")
	logger.ErrorContext(ctx, "failed to commit transaction", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"duration_ms":1.5`)
	assert.Contains(t, output, `"command_type":"BorrowBook"`)
	assert.Contains(t, output, `"record":"line 3"`)
}

func Test_NewSlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	// arrange
	logger := oteladapters.NewSlogBridgeLogger("lending-catalog-test")

	// act + assert
	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "catalogstore operation: transaction committed")
	})
}

func Test_OTelLogger_EmitsSeverityBodyAndAttributes(t *testing.T) {
	testCases := []struct {
		name             string
		emit             func(l *oteladapters.OTelLogger, ctx context.Context)
		expectedSeverity log.Severity
	}{
		{
			name: "debug",
			emit: func(l *oteladapters.OTelLogger, ctx context.Context) {
				l.DebugContext(ctx, "message", "isbn", "isbn-1")
			},
			expectedSeverity: log.SeverityDebug,
		},
		{
			name: "info",
			emit: func(l *oteladapters.OTelLogger, ctx context.Context) {
				l.InfoContext(ctx, "message", "isbn", "isbn-1")
			},
			expectedSeverity: log.SeverityInfo,
		},
		{
			name: "warn",
			emit: func(l *oteladapters.OTelLogger, ctx context.Context) {
				l.WarnContext(ctx, "message", "isbn", "isbn-1")
			},
			expectedSeverity: log.SeverityWarn,
		},
		{
			name: "error",
			emit: func(l *oteladapters.OTelLogger, ctx context.Context) {
				l.ErrorContext(ctx, "message", "isbn", "isbn-1")
			},
			expectedSeverity: log.SeverityError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			recorder := &recordingLogger{}
			logger := oteladapters.NewOTelLogger(recorder)

			// act
			tc.emit(logger, context.Background())

			// assert
			require.Len(t, recorder.records, 1)
			record := recorder.records[0]
			assert.Equal(t, tc.expectedSeverity, record.Severity())
			assert.Equal(t, "message", record.Body().AsString())
			assert.Equal(t, "isbn-1", attributesOf(record)["isbn"].AsString())
		})
	}
}

func Test_OTelLogger_ConvertsAttributeTypes(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.InfoContext(context.Background(), "typed",
		"copies", 3,
		"statements", int64(7),
		"read_only", true,
		"duration_ms", 1.25,
		"error", errors.New("boom"),
		"counts", struct{ Books int }{Books: 2},
		42, "key is not a string",
		"dangling",
	)

	// assert
	require.Len(t, recorder.records, 1)
	attrs := attributesOf(recorder.records[0])

	assert.Len(t, attrs, 6, "a non-string key and a dangling key are dropped")
	assert.Equal(t, int64(3), attrs["copies"].AsInt64())
	assert.Equal(t, int64(7), attrs["statements"].AsInt64())
	assert.True(t, attrs["read_only"].AsBool())
	assert.InDelta(t, 1.25, attrs["duration_ms"].AsFloat64(), 0.0001)
	assert.Equal(t, "boom", attrs["error"].AsString())
	assert.Equal(t, "{2}", attrs["counts"].AsString())
}
