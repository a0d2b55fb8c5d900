package store

import (
	"context"
	stderrors "errors"
	"time"
)

// retryDelay is the wait before the first retry; it doubles each attempt.
var retryDelay = time.Second

// retryableError marks a failure that is worth another attempt, such as a
// refused connection while a database container starts.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// retryable wraps err so that retryWithBackoff tries again.
func retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

func isRetryable(err error) bool {
	var re *retryableError
	return stderrors.As(err, &re)
}

// retryWithBackoff runs fn up to three times with exponential backoff.
// Only errors wrapped with retryable trigger a retry; the last error is
// returned unwrapped.
func retryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) {
			return err
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	var re *retryableError
	if stderrors.As(lastErr, &re) {
		return re.err
	}
	return lastErr
}
