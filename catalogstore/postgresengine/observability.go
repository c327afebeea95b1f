package postgresengine

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s CatalogStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logQueryOutcome logs how a transaction ended at debug level.
func (s CatalogStore) logQueryOutcome(
	ctx context.Context,
	action string,
	readOnly bool,
	statements int,
	duration time.Duration,
) {
	args := []any{logAttrReadOnly, readOnly, logAttrStatements, statements, logAttrDurationMS, s.toMilliseconds(duration)}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgOperation+action, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s CatalogStore) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (s CatalogStore) logWarn(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (s CatalogStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s CatalogStore) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDurationMetrics records transaction duration metrics if a metrics collector is configured.
func (s CatalogStore) recordDurationMetrics(ctx context.Context, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: operation,
		labelStatus:    status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := s.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricTransactionDuration, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metricTransactionDuration, duration, labels)
	}
}

// recordErrorMetrics records database error metrics if a metrics collector is configured.
func (s CatalogStore) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation: operation,
		labelStatus:    statusError,
		labelErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// recordConcurrencyConflictMetrics records concurrency conflict metrics if a metrics collector is configured.
func (s CatalogStore) recordConcurrencyConflictMetrics(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		labelOperation:  operation,
		"conflict_type": "concurrency",
	}

	if contextualCollector, ok := s.metricsCollector.(catalogstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
	}
}
