package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
	OnRetry     func(attempt int, err error)
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// Do executes the operation up to MaxAttempts times with a fixed delay
// between attempts. Context cancellation is respected while waiting.
//
// Errors wrapped with Fatal(), or rejected by the WithRetryable classifier,
// are returned immediately without consuming the remaining budget.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := &Config{
		MaxAttempts: 3,
		Delay:       time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}
		if cfg.Retryable != nil && !cfg.Retryable(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		if attempt < cfg.MaxAttempts {
			if cfg.OnRetry != nil {
				cfg.OnRetry(attempt, err)
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(cfg.Delay):
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// WithMaxAttempts sets the total attempt budget (first attempt included).
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithDelay sets the fixed delay between attempts.
func WithDelay(d time.Duration) Option {
	return func(c *Config) {
		c.Delay = d
	}
}

// WithRetryable sets a classifier deciding whether an error is worth
// retrying. Errors the classifier rejects terminate the budget immediately.
func WithRetryable(f func(error) bool) Option {
	return func(c *Config) {
		c.Retryable = f
	}
}

// WithOnRetry sets a callback invoked before each wait, carrying the attempt
// counter and the error that caused the retry.
func WithOnRetry(f func(attempt int, err error)) Option {
	return func(c *Config) {
		c.OnRetry = f
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
// Operations that encounter fatal errors will not be retried.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
