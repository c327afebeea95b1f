package shell

import (
	"context"
	"math"
	"strconv"
	"time"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration.
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"

	// CommandHandlerCallsMetric tracks total command handler calls.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"

	// CommandHandlerRefusedMetric tracks business-rule refusals.
	CommandHandlerRefusedMetric = "commandhandler_refused_operations_total"

	// CommandHandlerRetriesMetric tracks retried command executions.
	CommandHandlerRetriesMetric = "commandhandler_retries_total"

	// CommandHandlerRetryDelayMetric tracks the time spent waiting between retries.
	CommandHandlerRetryDelayMetric = "commandhandler_retry_delay_seconds"

	// CommandHandlerMaxRetriesReachedMetric tracks when max retries are exhausted.
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	// QueryHandlerDurationMetric tracks query handler execution duration.
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"

	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"

	// StatusIdempotent indicates an idempotent refusal: the request was already satisfied or already undone.
	StatusIdempotent = "idempotent"

	// StatusRefused indicates a business-rule refusal.
	StatusRefused = "refused"

	// StatusError indicates a processing error.
	StatusError = "error"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	// StatusConcurrencyConflict indicates the operation failed after conflicting with other transactions.
	StatusConcurrencyConflict = "concurrency_conflict"

	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandRefused   = "command handler refused"
	LogMsgCommandFailed    = "command handler failed"
	LogMsgQueryStarted     = "query handler started"
	LogMsgQueryCompleted   = "query handler completed"
	LogMsgQueryFailed      = "query handler failed"
	LogMsgRecordSkipped    = "import skipped a record"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrReason          = "reason"
	LogAttrErrorClass      = "error_class"
	LogAttrError           = "error"
	LogAttrRecord          = "record"
)

// BuildCommandLabels creates standard metric labels for command handler operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels creates standard metric labels for query handler operations.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// BuildRetryLabels creates standard metric labels for retry operations.
func BuildRetryLabels(commandType string, retries int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		"retries":          strconv.Itoa(retries),
		"error_type":       errorType,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func ToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// StatusFor maps the outcome of a handler call to its metric status.
func StatusFor(err error, idempotent bool) string {
	switch {
	case err == nil:
		return StatusSuccess
	case idempotent:
		return StatusIdempotent
	case IsRefusal(err):
		return StatusRefused
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsConcurrencyConflictError(err):
		return StatusConcurrencyConflict
	default:
		return StatusError
	}
}

// RecordCommandMetrics records duration and call count of a command, plus a refusal counter for refusals.
// It handles both context-aware and basic metrics collectors automatically.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	recordDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	if status == StatusRefused || status == StatusIdempotent {
		incrementCounter(ctx, collector, CommandHandlerRefusedMetric, BuildCommandLabels(commandType, status))
	}
}

// RecordRetryMetrics records retry metadata from a HandlerResult.
func RecordRetryMetrics(ctx context.Context, collector MetricsCollector, commandType string, result HandlerResult) {
	if collector == nil {
		return
	}

	if result.RetryAttempts > 1 {
		incrementCounter(
			ctx,
			collector,
			CommandHandlerRetriesMetric,
			BuildRetryLabels(commandType, result.RetryAttempts-1, result.LastErrorType),
		)
		recordDuration(
			ctx,
			collector,
			CommandHandlerRetryDelayMetric,
			result.TotalRetryDelay,
			map[string]string{LogAttrCommandType: commandType},
		)
	}

	if result.RetriesExhausted {
		incrementCounter(ctx, collector, CommandHandlerMaxRetriesReachedMetric, map[string]string{LogAttrCommandType: commandType})
	}
}

// RecordQueryMetrics records duration and call count of a query.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	recordDuration(ctx, collector, QueryHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, QueryHandlerCallsMetric, labels)
}

func recordDuration(
	ctx context.Context,
	collector MetricsCollector,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	collector.RecordDuration(metric, duration, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

// LogCommandStart logs the beginning of command processing at debug level.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	if contextualLogger != nil {
		contextualLogger.DebugContext(ctx, LogMsgCommandStarted, LogAttrCommandType, commandType)
	} else if logger != nil {
		logger.Debug(LogMsgCommandStarted, LogAttrCommandType, commandType)
	}
}

// LogCommandSuccess logs successful command completion.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, StatusSuccess,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgCommandCompleted, args...)
	}
}

// LogCommandRefused logs a business-rule refusal. Refusals are expected and never logged as errors.
func LogCommandRefused(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	err error,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, StatusRefused,
		LogAttrStatus, status,
		LogAttrReason, err.Error(),
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandRefused, args...)
	} else if logger != nil {
		logger.Info(LogMsgCommandRefused, args...)
	}
}

// LogCommandError logs command processing errors.
// Invalid input is logged at warn level, everything else at error level.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
) {
	class := ClassifyError(err)
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrErrorClass, string(class),
		LogAttrError, err.Error(),
	}

	logAtLevelFor(ctx, logger, contextualLogger, class, LogMsgCommandFailed, args...)
}

// LogQueryStart logs the beginning of query processing at debug level.
func LogQueryStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string) {
	if contextualLogger != nil {
		contextualLogger.DebugContext(ctx, LogMsgQueryStarted, LogAttrQueryType, queryType)
	} else if logger != nil {
		logger.Debug(LogMsgQueryStarted, LogAttrQueryType, queryType)
	}
}

// LogQuerySuccess logs successful query completion.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	duration time.Duration,
) {
	args := []any{
		LogAttrQueryType, queryType,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgQueryCompleted, args...)
	}
}

// LogQueryError logs query processing errors.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	err error,
) {
	class := ClassifyError(err)
	args := []any{
		LogAttrQueryType, queryType,
		LogAttrErrorClass, string(class),
		LogAttrError, err.Error(),
	}

	logAtLevelFor(ctx, logger, contextualLogger, class, LogMsgQueryFailed, args...)
}

func logAtLevelFor(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	class ErrorClass,
	message string,
	args ...any,
) {

	warn := class == ClassInvalidInput || class == ClassCanceled

	switch {
	case contextualLogger != nil && warn:
		contextualLogger.WarnContext(ctx, message, args...)
	case contextualLogger != nil:
		contextualLogger.ErrorContext(ctx, message, args...)
	case logger != nil && warn:
		logger.Warn(message, args...)
	case logger != nil:
		logger.Error(message, args...)
	}
}

// LogRecordSkipped logs an import record that was not written, at warn level.
func LogRecordSkipped(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	record string,
	reason string,
) {

	args := []any{
		LogAttrCommandType, commandType,
		LogAttrRecord, record,
		LogAttrReason, reason,
	}

	if contextualLogger != nil {
		contextualLogger.WarnContext(ctx, LogMsgRecordSkipped, args...)
	} else if logger != nil {
		logger.Warn(LogMsgRecordSkipped, args...)
	}
}
