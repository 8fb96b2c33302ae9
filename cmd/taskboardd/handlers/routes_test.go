package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/taskboard/taskboard/cmd/taskboardd/handlers"
	httptestutil "github.com/taskboard/taskboard/internal/testutils/http"
	apierr "github.com/taskboard/taskboard/pkg/api/types/errors"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	"github.com/taskboard/taskboard/pkg/domain/taskboard/db/memory"
	"github.com/taskboard/taskboard/pkg/utils/try"
)

func TestRoot(t *testing.T) {
	for name, testcase := range map[string]struct {
		root string
		when []string
		then string
	}{
		"path only": {
			root: "/api", when: []string{"tasks", "1"}, then: "/api/tasks/1/",
		},
		"with origin": {
			root: "https://example.org:8080/api/", when: []string{"users"}, then: "https://example.org:8080/api/users/",
		},
		"no elements": {
			root: "/api", when: nil, then: "/api/",
		},
	} {
		t.Run(name, func(t *testing.T) {
			api := try.To(handlers.Root(testcase.root)).OrFatal(t)
			if got := api(testcase.when...); got != testcase.then {
				t.Errorf("got %s, want %s", got, testcase.then)
			}
		})
	}
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	return try.To(handlers.New(memory.Sample(memory.WithClock(clock)), clock)).OrFatal(t)
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("%s: %v", body, err)
	}
	return v
}

func TestServer(t *testing.T) {
	t.Run("it reports health with a request id", func(t *testing.T) {
		e := newServer(t)
		resp := httptestutil.Serve(e, http.MethodGet, "/api/health", nil)

		if resp.Code != http.StatusOK {
			t.Errorf("status code: %d", resp.Code)
		}
		if got := decode[map[string]string](t, resp.Body.Bytes()); got["status"] != "ok" {
			t.Errorf("body: %v", got)
		}
		if resp.Header().Get(echo.HeaderXRequestID) == "" {
			t.Error("no request id")
		}
	})

	t.Run("it allows any origin", func(t *testing.T) {
		e := newServer(t)
		resp := httptestutil.Serve(
			e, http.MethodOptions, "/api/tasks/", nil,
			httptestutil.WithHeader("Origin", "http://localhost:5173"),
			httptestutil.WithHeader(echo.HeaderAccessControlRequestMethod, http.MethodPut),
		)
		if got := resp.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
			t.Errorf("allow origin: %q", got)
		}
	})

	t.Run("it serves routes with or without trailing slash", func(t *testing.T) {
		e := newServer(t)
		for _, target := range []string{"/api/tasks", "/api/tasks/"} {
			resp := httptestutil.Serve(e, http.MethodGet, target, nil)
			got := decode[[]apitasks.Detail](t, resp.Body.Bytes())
			if len(got) != 6 {
				t.Errorf("%s: %d tasks", target, len(got))
			}
		}
	})

	t.Run("it searches tasks by tag", func(t *testing.T) {
		e := newServer(t)
		for target, want := range map[string][]int64{
			"/api/tasks/search?tag=sql":            {2},
			"/api/tasks/search?tag=sql&exact=true": {},
			"/api/tasks/search?tag=SQL&exact=true": {2},
			"/api/tasks/search?tag=cobol":          {1},
		} {
			resp := httptestutil.Serve(e, http.MethodGet, target, nil)
			got := decode[[]apitasks.Detail](t, resp.Body.Bytes())
			ids := []int64{}
			for _, d := range got {
				ids = append(ids, d.Id)
			}
			if !equalIds(ids, want) {
				t.Errorf("%s: got %v, want %v", target, ids, want)
			}
		}
	})

	t.Run("it responds errors in a message envelope", func(t *testing.T) {
		e := newServer(t)
		resp := httptestutil.Serve(e, http.MethodGet, "/api/tasks/search", nil)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("status code: %d", resp.Code)
		}
		got := decode[apierr.ErrorResponse](t, resp.Body.Bytes())
		if got.Message.Reason != "Tag parameter is required and cannot be empty" {
			t.Errorf("body: %s", resp.Body.String())
		}

		resp = httptestutil.Serve(e, http.MethodGet, "/api/nowhere", nil)
		if resp.Code != http.StatusNotFound {
			t.Errorf("status code: %d", resp.Code)
		}
		if got := decode[apierr.ErrorResponse](t, resp.Body.Bytes()); got.Message.Reason == "" {
			t.Errorf("body: %s", resp.Body.String())
		}
	})

	t.Run("it moves a task and counts it", func(t *testing.T) {
		e := newServer(t)

		resp := httptestutil.Serve(e, http.MethodPut, "/api/tasks/3/status", strings.NewReader(`{"status": "IN_PROGRESS"}`))
		if resp.Code != http.StatusOK {
			t.Fatalf("status code: %d, %s", resp.Code, resp.Body.String())
		}
		moved := decode[apitasks.Detail](t, resp.Body.Bytes())
		if moved.Status != "IN_PROGRESS" || moved.UpdatedAt == nil {
			t.Errorf("moved: %+v", moved)
		}

		resp = httptestutil.Serve(e, http.MethodGet, "/api/stats", nil)
		got := decode[apitasks.Stats](t, resp.Body.Bytes())
		want := apitasks.Stats{Total: 6, Completed: 1, InProgress: 2, Overdue: 0}
		if got != want {
			t.Errorf("stats: got %+v, want %+v", got, want)
		}
	})

	t.Run("it refuses to delete a user with tasks", func(t *testing.T) {
		e := newServer(t)
		resp := httptestutil.Serve(e, http.MethodDelete, "/api/users/1", nil)
		if resp.Code != http.StatusConflict {
			t.Errorf("status code: %d", resp.Code)
		}

		resp = httptestutil.Serve(e, http.MethodGet, "/api/users/1", nil)
		if resp.Code != http.StatusOK {
			t.Errorf("user is lost: %d", resp.Code)
		}
	})
}

func equalIds(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
