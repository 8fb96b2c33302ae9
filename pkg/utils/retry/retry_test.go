package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/taskboard/taskboard/pkg/utils/retry"
)

func TestBlocking(t *testing.T) {
	t.Run("it retries while f asks to", func(t *testing.T) {
		calls := 0
		got, err := retry.Blocking(
			context.Background(), retry.StaticBackoff(time.Millisecond),
			func() (int, error) {
				calls += 1
				if calls < 3 {
					return 0, fmt.Errorf("not yet: %w", retry.ErrRetry)
				}
				return calls, nil
			},
		)
		if err != nil {
			t.Fatal(err)
		}
		if got != 3 || calls != 3 {
			t.Errorf("got %d after %d calls", got, calls)
		}
	})

	t.Run("it stops on a non-retry error", func(t *testing.T) {
		expected := errors.New("fatal")
		calls := 0
		_, err := retry.Blocking(
			context.Background(), retry.StaticBackoff(time.Millisecond),
			func() (int, error) {
				calls += 1
				return 0, expected
			},
		)
		if !errors.Is(err, expected) || calls != 1 {
			t.Errorf("err = %v, calls = %d", err, calls)
		}
	})

	t.Run("it gives up when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := retry.Blocking(
			ctx, retry.StaticBackoff(time.Hour),
			func() (int, error) { return 0, retry.ErrRetry },
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
		if !errors.Is(err, retry.ErrRetry) {
			t.Errorf("last error is lost: %v", err)
		}
	})
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(5*time.Millisecond, 2)

	begin := time.Now()
	for range 3 {
		if err := b(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	// 5 + 10 + 20
	if elapsed := time.Since(begin); elapsed < 35*time.Millisecond {
		t.Errorf("waited too short: %s", elapsed)
	}
}
