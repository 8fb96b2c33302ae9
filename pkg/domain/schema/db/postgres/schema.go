package postgres

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	kpool "github.com/taskboard/taskboard/pkg/conn/db/postgres/pool"
	kschema "github.com/taskboard/taskboard/pkg/domain/schema/db"
)

// ErrOutdated is the cause of the schema context when the database is older than the repository.
var ErrOutdated = errors.New("schema is outdated")

type pgSchema struct {
	pool       kpool.Pool
	repository string
}

var _ kschema.SchemaInterface = &pgSchema{}

// New creates a schema manager.
//
// # Args
//
// - pool: connections to the database.
//
// - repository: directory which has version directories, named by numbers.
// Each version directory has sql files, applied in lexical order.
func New(pool kpool.Pool, repository string) kschema.SchemaInterface {
	return &pgSchema{pool: pool, repository: repository}
}

type version struct {
	Number int
	Root   string
}

func (v version) apply(ctx context.Context, q kpool.Queryer) error {
	return filepath.WalkDir(v.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}

		query, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, string(query)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()
	return currentVersion(ctx, conn)
}

func currentVersion(ctx context.Context, q kpool.Queryer) (int, error) {
	var v *int
	if err := q.QueryRow(
		ctx, `select max("version") from "schema_version"`,
	).Scan(&v); err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UndefinedTable {
			return 0, nil
		}
		return -1, err
	}
	if v == nil {
		return 0, nil
	}
	return *v, nil
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	if s.repository == "" {
		return kschema.ErrNoRepository
	}
	versions, err := s.versions()
	if err != nil {
		return err
	}

	_, err = kpool.InTx(ctx, s.pool, func(tx kpool.Tx) (struct{}, error) {
		current, err := currentVersion(ctx, tx)
		if err != nil {
			return struct{}{}, err
		}

		for _, v := range versions {
			if v.Number <= current {
				continue
			}
			if err := v.apply(ctx, tx); err != nil {
				return struct{}{}, err
			}
			if _, err := tx.Exec(ctx, `delete from "schema_version"`); err != nil {
				return struct{}{}, err
			}
			if _, err := tx.Exec(
				ctx, `insert into "schema_version" ("version") values ($1)`, v.Number,
			); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func (s *pgSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, cancel := context.WithCancelCause(ctx)
	if s.repository == "" {
		return cctx, func() { cancel(nil) }
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return cctx, func() {}
	}
	if err := w.Add(s.repository); err != nil {
		w.Close()
		cancel(err)
		return cctx, func() {}
	}

	check := func() {
		versions, err := s.versions()
		if err != nil {
			cancel(fmt.Errorf("failed to read schema repository: %w", err))
			return
		}
		current, err := s.Version(cctx)
		if err != nil {
			cancel(fmt.Errorf("failed to get current schema version: %w", err))
			return
		}
		if len(versions) == 0 {
			return
		}
		if latest := versions[len(versions)-1].Number; current < latest {
			cancel(fmt.Errorf("%w: %d (in db) < %d (in repository)", ErrOutdated, current, latest))
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer w.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if filepath.Clean(s.repository) != filepath.Dir(ev.Name) {
					continue
				}
				check()
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	check()
	return cctx, func() {
		cancel(nil)
		<-done
	}
}

// versions in the repository, in ascending order.
func (s *pgSchema) versions() ([]version, error) {
	entries, err := os.ReadDir(s.repository)
	if err != nil {
		return nil, err
	}

	vs := make([]version, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		vs = append(vs, version{Number: n, Root: filepath.Join(s.repository, e.Name())})
	}
	slices.SortFunc(vs, func(a, b version) int { return cmp.Compare(a.Number, b.Number) })
	return vs, nil
}
