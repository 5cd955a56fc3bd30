package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks a failure worth another attempt, such as a refused
// connection while Redis is starting.
type RetryableError struct{ Err error }

// Retryable wraps err so [Backoff.Do] retries it. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff bounds how often a backend operation is retried.
type Backoff struct {
	// Attempts is the total number of calls; values below 1 mean 1.
	Attempts int
	// Delay is the pause before the second call. It doubles after each retry.
	Delay time.Duration
}

// DefaultBackoff tries three times over roughly 750ms.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 250 * time.Millisecond}

// Do calls fn until it succeeds, returns an error not marked [Retryable],
// the attempts run out or ctx is done.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var lastErr error
	for i := range attempts {
		if lastErr = fn(); lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
