package retry

import (
	"context"
	"errors"
	"time"
)

// ErrRetry tells Blocking to call again after backoff.
var ErrRetry = errors.New("retry")

// Backoff blocks until the next attempt is due.
//
// It returns ctx.Err() when ctx is done before that.
type Backoff func(context.Context) error

// StaticBackoff waits for interval each time.
func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1)
}

// ExponentialBackoff waits for initial * r^N on the N-th call.
func ExponentialBackoff(initial time.Duration, r float64) Backoff {
	interval := initial
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			interval = time.Duration(float64(interval) * r)
			return nil
		}
	}
}

// Blocking calls f until it succeeds, fails with an error other than ErrRetry,
// or ctx is done.
//
// f is called once without waiting. Backoff is waited before each retry.
// When ctx is done, the last error of f is joined with ctx's.
func Blocking[T any](ctx context.Context, b Backoff, f func() (T, error)) (T, error) {
	for {
		last, err := f()
		if err == nil {
			return last, nil
		}
		if !errors.Is(err, ErrRetry) {
			return last, err
		}
		if berr := b(ctx); berr != nil {
			return last, errors.Join(berr, err)
		}
	}
}
