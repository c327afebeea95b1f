package postgresengine

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
)

// ErrInvalidLockTimeout is returned by WithLockTimeout for negative durations.
var ErrInvalidLockTimeout = errors.New("lock timeout must not be negative")

// Option defines a functional option for configuring CatalogStore.
type Option func(*CatalogStore) error

// WithLogger sets the logger for the CatalogStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Transaction outcomes, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like failed rollbacks
// Error level: Critical failures that cause operation failures.
func WithLogger(logger catalogstore.Logger) Option {
	return func(s *CatalogStore) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the CatalogStore.
// If both loggers are configured, the contextual logger wins.
func WithContextualLogger(logger catalogstore.ContextualLogger) Option {
	return func(s *CatalogStore) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the CatalogStore.
// It receives transaction durations, concurrency conflicts, and database errors.
func WithMetrics(collector catalogstore.MetricsCollector) Option {
	return func(s *CatalogStore) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithLockTimeout sets how long a read-write transaction waits for a row lock before it fails with
// catalogstore.ErrConcurrencyConflict. Zero disables the timeout.
func WithLockTimeout(timeout time.Duration) Option {
	return func(s *CatalogStore) error {
		if timeout < 0 {
			return ErrInvalidLockTimeout
		}

		s.lockTimeout = timeout

		return nil
	}
}
