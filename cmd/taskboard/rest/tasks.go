package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
)

func taskNotFound(id int64) map[int]string {
	return map[int]string{http.StatusNotFound: fmt.Sprintf("task %d is not found", id)}
}

func (c *client) findTasks(ctx context.Context, path []string, query url.Values, messageFor MessageFor) ([]apitasks.Detail, error) {
	resp, err := c.request(ctx, http.MethodGet, c.apipath(path...), query, nil)
	if err != nil {
		return nil, err
	}
	if messageFor.Range == nil {
		messageFor.Range = map[StatusCodeRange]string{}
	}
	if _, ok := messageFor.Range[Status5xx]; !ok {
		messageFor.Range[Status5xx] = fmt.Sprintf("server error (status code = %d)", resp.StatusCode)
	}

	ret := []apitasks.Detail{}
	if err := unmarshalJsonResponse(resp, &ret, messageFor); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *client) ListTasks(ctx context.Context) ([]apitasks.Detail, error) {
	return c.findTasks(ctx, []string{"tasks"}, nil, MessageFor{
		Range: map[StatusCodeRange]string{Status4xx: "cannot list tasks"},
	})
}

func (c *client) TasksOfUser(ctx context.Context, userId int64) ([]apitasks.Detail, error) {
	return c.findTasks(ctx, []string{"tasks", "user", strconv.FormatInt(userId, 10)}, nil, MessageFor{
		Range: map[StatusCodeRange]string{Status4xx: fmt.Sprintf("cannot list tasks of user %d", userId)},
	})
}

func (c *client) SearchTasks(ctx context.Context, tag string, exact bool) ([]apitasks.Detail, error) {
	query := url.Values{}
	query.Set("tag", tag)
	if exact {
		query.Set("exact", "true")
	}
	return c.findTasks(ctx, []string{"tasks", "search"}, query, MessageFor{
		Range: map[StatusCodeRange]string{Status4xx: fmt.Sprintf("cannot search tasks with tag %q", tag)},
	})
}

func (c *client) GetTask(ctx context.Context, id int64) (apitasks.Detail, error) {
	resp, err := c.request(ctx, http.MethodGet, c.apipath("tasks", strconv.FormatInt(id, 10)), nil, nil)
	if err != nil {
		return apitasks.Detail{}, err
	}

	var ret apitasks.Detail
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Code: taskNotFound(id),
		Range: map[StatusCodeRange]string{
			Status4xx: fmt.Sprintf("cannot get task %d", id),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apitasks.Detail{}, err
	}
	return ret, nil
}

func (c *client) CreateTask(ctx context.Context, spec apitasks.Spec) (apitasks.Detail, error) {
	resp, err := c.request(ctx, http.MethodPost, c.apipath("tasks"), nil, spec)
	if err != nil {
		return apitasks.Detail{}, err
	}

	var ret apitasks.Detail
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Range: map[StatusCodeRange]string{
			Status4xx: "task is not created",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apitasks.Detail{}, err
	}
	return ret, nil
}

func (c *client) UpdateTask(ctx context.Context, id int64, change apitasks.Change) (apitasks.Detail, error) {
	resp, err := c.request(ctx, http.MethodPut, c.apipath("tasks", strconv.FormatInt(id, 10)), nil, change)
	if err != nil {
		return apitasks.Detail{}, err
	}

	var ret apitasks.Detail
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Code: taskNotFound(id),
		Range: map[StatusCodeRange]string{
			Status4xx: fmt.Sprintf("task %d is not updated", id),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apitasks.Detail{}, err
	}
	return ret, nil
}

func (c *client) UpdateTaskStatus(ctx context.Context, id int64, status string) (apitasks.Detail, error) {
	resp, err := c.request(
		ctx, http.MethodPut, c.apipath("tasks", strconv.FormatInt(id, 10), "status"), nil,
		apitasks.StatusChange{Status: status},
	)
	if err != nil {
		return apitasks.Detail{}, err
	}

	var ret apitasks.Detail
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Code: taskNotFound(id),
		Range: map[StatusCodeRange]string{
			Status4xx: fmt.Sprintf("task %d is not moved to %s", id, status),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apitasks.Detail{}, err
	}
	return ret, nil
}

func (c *client) DeleteTask(ctx context.Context, id int64) error {
	resp, err := c.request(ctx, http.MethodDelete, c.apipath("tasks", strconv.FormatInt(id, 10)), nil, nil)
	if err != nil {
		return err
	}

	return unmarshalResponseDiscardingPayload(resp, MessageFor{
		Code: taskNotFound(id),
		Range: map[StatusCodeRange]string{
			Status4xx: fmt.Sprintf("task %d is not deleted", id),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	})
}

func (c *client) Stats(ctx context.Context) (apitasks.Stats, error) {
	resp, err := c.request(ctx, http.MethodGet, c.apipath("stats"), nil, nil)
	if err != nil {
		return apitasks.Stats{}, err
	}

	var ret apitasks.Stats
	if err := unmarshalJsonResponse(resp, &ret, MessageFor{
		Range: map[StatusCodeRange]string{
			Status4xx: "cannot get statistics",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	}); err != nil {
		return apitasks.Stats{}, err
	}
	return ret, nil
}
