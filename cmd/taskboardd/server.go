package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/taskboard/taskboard/cmd/taskboardd/handlers"
	kconf "github.com/taskboard/taskboard/pkg/configs/server"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	"github.com/taskboard/taskboard/pkg/domain/taskboard/db/memory"
	kpg "github.com/taskboard/taskboard/pkg/domain/taskboard/db/postgres"
	"github.com/taskboard/taskboard/pkg/domain/taskboard/db/sqlite"
	"github.com/taskboard/taskboard/pkg/utils/echoutil"
	"github.com/taskboard/taskboard/pkg/utils/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// connectTimeout bounds waiting for the database to come up.
const connectTimeout = 30 * time.Second

// OpenDatabase opens the store named in conf.
//
// Connecting to postgres is retried until connectTimeout passes.
// The memory store gets the demo board when mock.seed is set.
func OpenDatabase(ctx context.Context, c *kconf.Config, logger *zap.Logger) (kdb.Database, error) {
	conf := c.DB
	switch conf.Driver {
	case kconf.Postgres:
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return retry.Blocking(
			cctx, retry.ExponentialBackoff(500*time.Millisecond, 1.5),
			func() (kdb.Database, error) {
				db, err := kpg.New(cctx, conf.URI, kpg.WithSchemaRepository(conf.SchemaRepository))
				if err != nil {
					logger.Warn("database is not ready", zap.Error(err))
					return nil, fmt.Errorf("%w: %w", retry.ErrRetry, err)
				}
				return db, nil
			},
		)
	case kconf.SQLite:
		return sqlite.Open(ctx, conf.URI)
	case kconf.Memory:
		if c.Mock.Seed {
			return memory.Sample(), nil
		}
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver: %s", conf.Driver)
	}
}

// BuildServer creates the API server on db, logging with logger.
func BuildServer(db kdb.Database, logger *zap.Logger, loglevel string) (*echo.Echo, error) {
	e, err := handlers.New(db, time.Now, echoutil.AccessLog(logger))
	if err != nil {
		return nil, err
	}
	echoutil.SetLevel(e, loglevel)
	for _, r := range e.Routes() {
		logger.Debug("mount handler", zap.String("method", r.Method), zap.String("path", r.Path))
	}
	return e, nil
}

// Serve runs e until ctx is done, then shuts it down gracefully.
//
// TLS is enabled when both of cert and key are given.
func Serve(ctx context.Context, e *echo.Echo, addr string, cert, key string) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if cert != "" && key != "" {
			err = e.StartTLS(addr, cert, key)
		} else {
			err = e.Start(addr)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		<-ctx.Done()
		qctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(qctx)
	})
	return eg.Wait()
}
