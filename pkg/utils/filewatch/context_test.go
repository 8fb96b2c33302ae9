package filewatch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskboard/taskboard/pkg/utils/filewatch"
	"go.uber.org/goleak"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context is not canceled")
	}
}

func TestUntilModifyContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("when a file is created in a watched directory, it cancels context", func(t *testing.T) {
		dir := t.TempDir()

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), dir)
		if err != nil {
			t.Fatal(err)
		}
		defer cancel()

		if err := ctx.Err(); err != nil {
			t.Fatalf("canceled too early: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		waitDone(t, ctx)
		if cause := context.Cause(ctx); !errors.Is(cause, filewatch.ErrModified) {
			t.Errorf("unexpected cause: %v", cause)
		}
	})

	t.Run("when a watched file is written, it cancels context", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(file, []byte("a: 1"), 0644); err != nil {
			t.Fatal(err)
		}

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), file)
		if err != nil {
			t.Fatal(err)
		}
		defer cancel()

		if err := os.WriteFile(file, []byte("a: 2"), 0644); err != nil {
			t.Fatal(err)
		}
		waitDone(t, ctx)
	})

	t.Run("when the parent is canceled, it is canceled too and stops watching", func(t *testing.T) {
		parent, cancelParent := context.WithCancel(context.Background())
		ctx, cancel, err := filewatch.UntilModifyContext(parent, t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		cancelParent()
		waitDone(t, ctx)
		cancel()

		if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
			t.Errorf("unexpected cause: %v", cause)
		}
	})

	t.Run("it fails for a missing path", func(t *testing.T) {
		ctx, cancel, err := filewatch.UntilModifyContext(
			context.Background(), filepath.Join(t.TempDir(), "missing"),
		)
		if err == nil {
			cancel()
			t.Fatal("expected error")
		}
		if ctx != nil || cancel != nil {
			t.Error("context should be nil on error")
		}
	})
}
