package main

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	kconf "github.com/taskboard/taskboard/pkg/configs/server"
	"github.com/taskboard/taskboard/pkg/domain"
	"github.com/taskboard/taskboard/pkg/domain/taskboard/db/memory"
	"github.com/taskboard/taskboard/pkg/utils/try"
	"go.uber.org/zap"
)

func TestOpenDatabase(t *testing.T) {
	ctx := context.Background()

	for name, testcase := range map[string]struct {
		conf      kconf.Config
		thenUsers int
	}{
		"empty memory": {
			conf: kconf.Config{DB: kconf.DBConfig{Driver: kconf.Memory}}, thenUsers: 0,
		},
		"seeded memory": {
			conf:      kconf.Config{DB: kconf.DBConfig{Driver: kconf.Memory}, Mock: kconf.MockConfig{Seed: true}},
			thenUsers: 5,
		},
		"sqlite": {
			conf: kconf.Config{DB: kconf.DBConfig{
				Driver: kconf.SQLite, URI: filepath.Join(t.TempDir(), "board.db"),
			}},
			thenUsers: 0,
		},
	} {
		t.Run(name, func(t *testing.T) {
			db := try.To(OpenDatabase(ctx, &testcase.conf, zap.NewNop())).OrFatal(t)
			defer db.Close()

			users := try.To(db.Users().List(ctx, domain.UserQuery{})).OrFatal(t)
			if len(users) != testcase.thenUsers {
				t.Errorf("users: %d", len(users))
			}
		})
	}

	t.Run("it gives up connecting to unreachable postgres", func(t *testing.T) {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		conf := kconf.Config{DB: kconf.DBConfig{
			Driver: kconf.Postgres, URI: "postgres://nobody@127.0.0.1:1/nothing?connect_timeout=1",
		}}
		if db, err := OpenDatabase(cctx, &conf, zap.NewNop()); err == nil {
			db.Close()
			t.Fatal("expected error")
		}
	})
}

func TestServe(t *testing.T) {
	db := memory.Sample()
	e := try.To(BuildServer(db, zap.NewNop(), "off")).OrFatal(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, e, "127.0.0.1:0", "", "") }()

	var addr string
	for range 100 {
		if a := e.ListenerAddr(); a != nil {
			addr = a.String()
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if addr == "" {
		cancel()
		t.Fatal("server does not start")
	}

	resp, err := http.Get("http://" + addr + "/api/health/")
	if err != nil {
		cancel()
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status code: %d", resp.StatusCode)
	}
	if resp.Header.Get(echo.HeaderXRequestID) == "" {
		t.Error("no request id")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server does not stop")
	}
}
