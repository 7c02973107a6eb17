package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when the bound elapses before the condition is met.
// Callers distinguish it from condition errors with errors.Is.
var ErrTimeout = errors.New("poll: timed out")

// Condition is evaluated once per interval. It returns done=true to stop
// polling successfully, or an error to abort immediately.
type Condition func(ctx context.Context) (done bool, err error)

// Until evaluates condition at the given fixed interval until it reports done,
// returns an error, timeout elapses, or ctx is cancelled. The condition is
// evaluated once immediately before the first interval.
//
// A timeout of zero means no bound: Until polls until the condition
// terminates or ctx is cancelled.
func Until(ctx context.Context, interval, timeout time.Duration, condition Condition) error {
	if interval <= 0 {
		return fmt.Errorf("poll: interval must be positive, got %v", interval)
	}

	done, err := condition(ctx)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// A nil channel never fires, which is exactly the unbounded case.
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("%w after %v", ErrTimeout, timeout)
		case <-ticker.C:
			done, err := condition(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}
