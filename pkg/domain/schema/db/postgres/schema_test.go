package postgres_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskboard/taskboard/pkg/conn/db/postgres/pool/testenv"
	kschema "github.com/taskboard/taskboard/pkg/domain/schema/db"
	kpgschema "github.com/taskboard/taskboard/pkg/domain/schema/db/postgres"
	"github.com/taskboard/taskboard/pkg/utils/try"
)

func TestSchema(t *testing.T) {
	ctx := context.Background()
	poolBroker := testenv.NewPoolBroker(ctx, t)

	t.Run("upgraded schema is the latest, and upgrading again changes nothing", func(t *testing.T) {
		pool := poolBroker.GetPool(ctx, t)
		testee := kpgschema.New(pool, testenv.SchemaRepository())

		if err := testee.Upgrade(ctx); err != nil {
			t.Fatal(err)
		}
		if got := try.To(testee.Version(ctx)).OrFatal(t); got != 1 {
			t.Errorf("version: got %d, want 1", got)
		}

		sctx, cancel := testee.Context(ctx)
		defer cancel()
		if err := sctx.Err(); err != nil {
			t.Errorf("context is done: %v", context.Cause(sctx))
		}
	})

	t.Run("context is canceled when the repository has newer version", func(t *testing.T) {
		pool := poolBroker.GetPool(ctx, t)

		repo := t.TempDir()
		if err := os.Mkdir(filepath.Join(repo, "1"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.Mkdir(filepath.Join(repo, "99"), 0o755); err != nil {
			t.Fatal(err)
		}

		testee := kpgschema.New(pool, repo)
		sctx, cancel := testee.Context(ctx)
		defer cancel()

		<-sctx.Done()
		if cause := context.Cause(sctx); !errors.Is(cause, kpgschema.ErrOutdated) {
			t.Errorf("unexpected cause: %v", cause)
		}
	})

	t.Run("schema without repository cannot upgrade", func(t *testing.T) {
		pool := poolBroker.GetPool(ctx, t)
		if err := kpgschema.New(pool, "").Upgrade(ctx); !errors.Is(err, kschema.ErrNoRepository) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
