package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/taskboard/taskboard/pkg/api/types/errors"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	"github.com/taskboard/taskboard/pkg/domain"
	ktask "github.com/taskboard/taskboard/pkg/domain/task/db"
)

const taskNotFound = "Task not found"

func composeTasks(tasks []domain.Task, clock Clock) []apitasks.Detail {
	today := clock.today()
	resp := make([]apitasks.Detail, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, apitasks.ComposeDetail(t, today))
	}
	return resp
}

func findTasks(dbTask ktask.TaskInterface, clock Clock, c echo.Context, query domain.TaskQuery) error {
	tasks, err := dbTask.Find(c.Request().Context(), query)
	if err != nil {
		return fromDB(err, taskNotFound)
	}
	return c.JSON(http.StatusOK, composeTasks(tasks, clock))
}

func CreateTaskHandler(dbTask ktask.TaskInterface, clock Clock) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bind[apitasks.Spec](c)
		if err != nil {
			return err
		}
		spec := req.Domain()
		if err := spec.Validate(clock.today()); err != nil {
			return invalid(err)
		}

		task, err := dbTask.Create(c.Request().Context(), spec)
		if err != nil {
			return fromDB(err, taskNotFound)
		}
		return c.JSON(http.StatusCreated, apitasks.ComposeDetail(task, clock.today()))
	}
}

func ListTaskHandler(dbTask ktask.TaskInterface, clock Clock) echo.HandlerFunc {
	return func(c echo.Context) error {
		return findTasks(dbTask, clock, c, domain.TaskQuery{})
	}
}

func GetTaskHandler(dbTask ktask.TaskInterface, clock Clock, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		task, err := dbTask.Get(c.Request().Context(), id)
		if err != nil {
			return fromDB(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, apitasks.ComposeDetail(task, clock.today()))
	}
}

// TasksOfUserHandler responds tasks assigned to the user.
func TasksOfUserHandler(dbTask ktask.TaskInterface, clock Clock, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		return findTasks(dbTask, clock, c, domain.TaskQuery{AssigneeId: &id})
	}
}

// SearchTaskHandler responds tasks having a tag containing query parameter "tag".
//
// With "exact=true", the tag should be equal to it.
func SearchTaskHandler(dbTask ktask.TaskInterface, clock Clock) echo.HandlerFunc {
	return func(c echo.Context) error {
		tag := strings.TrimSpace(c.QueryParam("tag"))
		if tag == "" {
			return apierr.BadRequest("Tag parameter is required and cannot be empty")
		}

		exact := false
		if raw := c.QueryParam("exact"); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return apierr.BadRequest(
					"Invalid exact parameter",
					apierr.WithAdvice(`"exact" should be true or false`),
					apierr.WithError(err),
				)
			}
			exact = b
		}

		return findTasks(dbTask, clock, c, domain.TaskQuery{Tag: tag, ExactTag: exact})
	}
}

func UpdateTaskHandler(dbTask ktask.TaskInterface, clock Clock, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		req, err := bind[apitasks.Change](c)
		if err != nil {
			return err
		}
		change := req.Domain()
		if err := change.Validate(clock.today()); err != nil {
			return invalid(err)
		}

		task, err := dbTask.Update(c.Request().Context(), id, change)
		if err != nil {
			return fromDB(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, apitasks.ComposeDetail(task, clock.today()))
	}
}

func UpdateTaskStatusHandler(dbTask ktask.TaskInterface, clock Clock, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		req, err := bind[apitasks.StatusChange](c)
		if err != nil {
			return err
		}
		if strings.TrimSpace(req.Status) == "" {
			return apierr.BadRequest("Status is required and cannot be empty")
		}
		status := domain.AsTaskStatus(req.Status)
		if !status.Valid() {
			return apierr.BadRequest(
				"Validation failed",
				apierr.WithAdvice(domain.InvalidStatusMessage),
			)
		}

		task, err := dbTask.SetStatus(c.Request().Context(), id, status)
		if err != nil {
			return fromDB(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, apitasks.ComposeDetail(task, clock.today()))
	}
}

func DeleteTaskHandler(dbTask ktask.TaskInterface, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := idParam(c, param)
		if err != nil {
			return err
		}
		if err := dbTask.Delete(c.Request().Context(), id); err != nil {
			return fromDB(err, taskNotFound)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func StatsHandler(dbTask ktask.TaskInterface, clock Clock) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := dbTask.Find(c.Request().Context(), domain.TaskQuery{})
		if err != nil {
			return fromDB(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, apitasks.ComposeStats(domain.Summarize(tasks, clock.today())))
	}
}
