package handlers

import (
	"net/http"
	"net/url"
	"path"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	apierr "github.com/taskboard/taskboard/pkg/api/types/errors"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	kstrings "github.com/taskboard/taskboard/pkg/utils/strings"
)

// Root creates an api URL factory.
//
// For r = "https://example.org:8080/api", Root(r)("tasks", "1") is
// "https://example.org:8080/api/tasks/1/". When r is a path only, results are paths.
func Root(r string) (func(...string) string, error) {
	b, err := url.Parse(r)
	if err != nil {
		return nil, err
	}
	base := b.Path
	origin := ""
	if b.Host != "" || b.Scheme != "" {
		o := *b
		o.Path, o.RawPath, o.RawQuery, o.Fragment = "", "", "", ""
		origin = o.String()
	}
	origin = kstrings.SupplySuffix(origin, "/")

	return func(s ...string) string {
		p := path.Join(append([]string{base}, s...)...)
		p = kstrings.TrimPrefixAll(p, "/")
		return kstrings.SupplySuffix(origin+p, "/")
	}, nil
}

// New creates an echo serving the taskboard API on db.
//
// Requests get ids (X-Request-Id), and CORS allows any origin.
func New(db kdb.Database, clock Clock, mws ...echo.MiddlewareFunc) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	e.Use(mws...)
	e.HTTPErrorHandler = apierr.Handler(e.DefaultHTTPErrorHandler)

	api, err := Root("/api")
	if err != nil {
		return nil, err
	}
	Register(e, api, db, clock)
	return e, nil
}

// Register adds routes of the taskboard API to e.
func Register(e *echo.Echo, api func(...string) string, db kdb.Database, clock Clock) {
	{
		users := db.Users()
		e.POST(api("users"), CreateUserHandler(users, clock))
		e.GET(api("users"), ListUserHandler(users, clock))
		e.GET(api("users/:userId"), GetUserHandler(users, clock, "userId"))
		e.PUT(api("users/:userId"), UpdateUserHandler(users, clock, "userId"))
		e.DELETE(api("users/:userId"), DeleteUserHandler(users, "userId"))
	}

	{
		tasks := db.Tasks()
		e.POST(api("tasks"), CreateTaskHandler(tasks, clock))
		e.GET(api("tasks"), ListTaskHandler(tasks, clock))
		e.GET(api("tasks/search"), SearchTaskHandler(tasks, clock))
		e.GET(api("tasks/user/:userId"), TasksOfUserHandler(tasks, clock, "userId"))
		e.GET(api("tasks/:taskId"), GetTaskHandler(tasks, clock, "taskId"))
		e.PUT(api("tasks/:taskId"), UpdateTaskHandler(tasks, clock, "taskId"))
		e.PUT(api("tasks/:taskId/status"), UpdateTaskStatusHandler(tasks, clock, "taskId"))
		e.DELETE(api("tasks/:taskId"), DeleteTaskHandler(tasks, "taskId"))
		e.GET(api("stats"), StatsHandler(tasks, clock))
	}

	e.GET(api("health"), func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
