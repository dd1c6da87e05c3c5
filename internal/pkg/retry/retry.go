package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"rf-loans/internal/core/domain"
)

const (
	DefaultMaxAttempts  = 5
	DefaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")
)

type config struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
}

// Option configures Do
type Option func(*config) error

// WithMaxAttempts sets the total number of attempts, the first one included
func WithMaxAttempts(attempts int) Option {
	return func(c *config) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		c.maxAttempts = attempts
		return nil
	}
}

// WithBaseDelay sets the delay before the first retry. Later retries double it.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *config) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}
		c.baseDelay = delay
		return nil
	}
}

// Do runs fn and retries it with exponential backoff while it fails with domain.ErrConflict.
// Any other error is returned immediately.
//
// Default schedule: 0, 10, 20, 40, 80 ms plus up to 30% jitter.
func Do(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	c := &config{
		maxAttempts:  DefaultMaxAttempts,
		baseDelay:    DefaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * c.jitterFactor //nolint:gosec // jitter only

			select {
			case <-time.After(delay + time.Duration(jitter)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, domain.ErrConflict) {
			return lastErr
		}
	}

	return lastErr
}
