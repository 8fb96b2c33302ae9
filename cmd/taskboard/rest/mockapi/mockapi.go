// Package mockapi serves the taskboard API in process, on fixtures in memory.
//
// It is used in place of a server when a profile sets useMockData.
package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboardd/handlers"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	"github.com/taskboard/taskboard/pkg/domain/taskboard/db/memory"
)

// ApiRoot is the (fake) root URL of the mock API.
const ApiRoot = "http://taskboard.mock/api"

type config struct {
	clock func() time.Time
	db    kdb.Database
}

type Option func(*config) *config

// WithClock replaces the clock of the mock API.
func WithClock(clock func() time.Time) Option {
	return func(c *config) *config {
		c.clock = clock
		return c
	}
}

// WithDatabase serves db instead of the fixtures.
func WithDatabase(db kdb.Database) Option {
	return func(c *config) *config {
		c.db = db
		return c
	}
}

// Transport is a RoundTripper serving requests with an echo, after delay.
type Transport struct {
	Handler *echo.Echo
	Delay   time.Duration
}

func (tr *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if tr.Delay > 0 {
		timer := time.NewTimer(tr.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			if req.Body != nil {
				req.Body.Close()
			}
			return nil, context.Cause(ctx)
		case <-timer.C:
		}
	}

	in := req.Clone(ctx)
	if in.Body == nil {
		in.Body = http.NoBody
	}
	in.RequestURI = in.URL.RequestURI()

	rec := httptest.NewRecorder()
	tr.Handler.ServeHTTP(rec, in)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

// NewClient creates a client of the mock API. Each call takes delay.
//
// Without WithDatabase, each client has its own copy of the fixtures.
func NewClient(delay time.Duration, options ...Option) (rest.Client, error) {
	conf := &config{clock: time.Now}
	for _, o := range options {
		conf = o(conf)
	}
	if conf.db == nil {
		conf.db = memory.Sample(memory.WithClock(conf.clock))
	}

	e, err := handlers.New(conf.db, conf.clock)
	if err != nil {
		return nil, err
	}
	hc := &http.Client{Transport: &Transport{Handler: e, Delay: delay}}
	return rest.NewClientWith(ApiRoot, hc), nil
}
