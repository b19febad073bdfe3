package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as a transient backend failure (connection
// refused, timeout). Data-integrity errors from the engine must never carry
// this marker; retrying them cannot succeed.
type RetryableError struct{ Err error }

// Retryable wraps err as retryable. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries the retryable marker anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// RetryWithBackoff runs fn, retrying retryable failures with doubling
// delays (1s, 2s). Non-retryable errors and context cancellation return
// immediately; after the attempt budget the last error is returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt, wait := 0, time.Second; attempt < retryAttempts; attempt, wait = attempt+1, wait*2 {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == retryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}
