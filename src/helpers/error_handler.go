package helpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"corona-observer/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ObserverError struct {
	Message string
	Cause   error
}

func (e *ObserverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ObserverError) Unwrap() error {
	return e.Cause
}

// Distinct error types so callers can tell failures apart with errors.As.
type ConfigurationError struct{ ObserverError }
type NetworkError struct {
	ObserverError
	StatusCode int
}
type ParseError struct{ ObserverError }
type DatabaseError struct{ ObserverError }

func NewNetworkError(statusCode int, cause error, format string, args ...interface{}) *NetworkError {
	return &NetworkError{ObserverError: ObserverError{Message: fmt.Sprintf(format, args...), Cause: cause}, StatusCode: statusCode}
}

func NewParseError(cause error, format string, args ...interface{}) *ParseError {
	return &ParseError{ObserverError{Message: fmt.Sprintf(format, args...), Cause: cause}}
}

func NewDatabaseError(cause error, format string, args ...interface{}) *DatabaseError {
	return &DatabaseError{ObserverError{Message: fmt.Sprintf(format, args...), Cause: cause}}
}

func NewConfigurationError(cause error, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{ObserverError{Message: fmt.Sprintf(format, args...), Cause: cause}}
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// Permanent marks an error that must not be retried.
type Permanent struct{ Err error }

func (p *Permanent) Error() string { return p.Err.Error() }
func (p *Permanent) Unwrap() error { return p.Err }

// RetryWithBackoff runs fn up to maxRetries+1 times, doubling the delay after
// each failure. It stops early on a *Permanent error or when ctx is done, and
// returns the last error unwrapped from Permanent.
func RetryWithBackoff[T any](ctx context.Context, log *logger.Logger, operation string, maxRetries int, baseDelay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		var perm *Permanent
		if errors.As(err, &perm) {
			return zero, perm.Err
		}
		if attempt == maxRetries {
			break
		}

		delay := baseDelay * (1 << attempt)
		if log != nil {
			log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries+1, operation, err, delay)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}
