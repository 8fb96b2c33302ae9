// Package mock is a test double of rest.Client.
package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
)

type UpdateUserArgs struct {
	Id   int64
	Spec apiusers.Spec
}

type UpdateTaskArgs struct {
	Id     int64
	Change apitasks.Change
}

type UpdateTaskStatusArgs struct {
	Id     int64
	Status string
}

type SearchTasksArgs struct {
	Tag   string
	Exact bool
}

type Client struct {
	t *testing.T

	Impl struct {
		ListUsers        func(ctx context.Context, name string) ([]apiusers.Detail, error)
		GetUser          func(ctx context.Context, id int64) (apiusers.Detail, error)
		CreateUser       func(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error)
		UpdateUser       func(ctx context.Context, id int64, spec apiusers.Spec) (apiusers.Detail, error)
		DeleteUser       func(ctx context.Context, id int64) error
		ListTasks        func(ctx context.Context) ([]apitasks.Detail, error)
		GetTask          func(ctx context.Context, id int64) (apitasks.Detail, error)
		CreateTask       func(ctx context.Context, spec apitasks.Spec) (apitasks.Detail, error)
		UpdateTask       func(ctx context.Context, id int64, change apitasks.Change) (apitasks.Detail, error)
		UpdateTaskStatus func(ctx context.Context, id int64, status string) (apitasks.Detail, error)
		DeleteTask       func(ctx context.Context, id int64) error
		TasksOfUser      func(ctx context.Context, userId int64) ([]apitasks.Detail, error)
		SearchTasks      func(ctx context.Context, tag string, exact bool) ([]apitasks.Detail, error)
		Stats            func(ctx context.Context) (apitasks.Stats, error)
	}

	Calls struct {
		ListUsers        []string
		GetUser          []int64
		CreateUser       []apiusers.Spec
		UpdateUser       []UpdateUserArgs
		DeleteUser       []int64
		ListTasks        int
		GetTask          []int64
		CreateTask       []apitasks.Spec
		UpdateTask       []UpdateTaskArgs
		UpdateTaskStatus []UpdateTaskStatusArgs
		DeleteTask       []int64
		TasksOfUser      []int64
		SearchTasks      []SearchTasksArgs
		Stats            int
	}
}

func New(t *testing.T) *Client {
	return &Client{t: t}
}

var _ rest.Client = &Client{}

func notImplemented() error {
	return errors.New("it should not be called")
}

func (m *Client) ListUsers(ctx context.Context, name string) ([]apiusers.Detail, error) {
	m.t.Helper()
	m.Calls.ListUsers = append(m.Calls.ListUsers, name)
	if m.Impl.ListUsers == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.ListUsers(ctx, name)
}

func (m *Client) GetUser(ctx context.Context, id int64) (apiusers.Detail, error) {
	m.t.Helper()
	m.Calls.GetUser = append(m.Calls.GetUser, id)
	if m.Impl.GetUser == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.GetUser(ctx, id)
}

func (m *Client) CreateUser(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error) {
	m.t.Helper()
	m.Calls.CreateUser = append(m.Calls.CreateUser, spec)
	if m.Impl.CreateUser == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.CreateUser(ctx, spec)
}

func (m *Client) UpdateUser(ctx context.Context, id int64, spec apiusers.Spec) (apiusers.Detail, error) {
	m.t.Helper()
	m.Calls.UpdateUser = append(m.Calls.UpdateUser, UpdateUserArgs{Id: id, Spec: spec})
	if m.Impl.UpdateUser == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.UpdateUser(ctx, id, spec)
}

func (m *Client) DeleteUser(ctx context.Context, id int64) error {
	m.t.Helper()
	m.Calls.DeleteUser = append(m.Calls.DeleteUser, id)
	if m.Impl.DeleteUser == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.DeleteUser(ctx, id)
}

func (m *Client) ListTasks(ctx context.Context) ([]apitasks.Detail, error) {
	m.t.Helper()
	m.Calls.ListTasks += 1
	if m.Impl.ListTasks == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.ListTasks(ctx)
}

func (m *Client) GetTask(ctx context.Context, id int64) (apitasks.Detail, error) {
	m.t.Helper()
	m.Calls.GetTask = append(m.Calls.GetTask, id)
	if m.Impl.GetTask == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.GetTask(ctx, id)
}

func (m *Client) CreateTask(ctx context.Context, spec apitasks.Spec) (apitasks.Detail, error) {
	m.t.Helper()
	m.Calls.CreateTask = append(m.Calls.CreateTask, spec)
	if m.Impl.CreateTask == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.CreateTask(ctx, spec)
}

func (m *Client) UpdateTask(ctx context.Context, id int64, change apitasks.Change) (apitasks.Detail, error) {
	m.t.Helper()
	m.Calls.UpdateTask = append(m.Calls.UpdateTask, UpdateTaskArgs{Id: id, Change: change})
	if m.Impl.UpdateTask == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.UpdateTask(ctx, id, change)
}

func (m *Client) UpdateTaskStatus(ctx context.Context, id int64, status string) (apitasks.Detail, error) {
	m.t.Helper()
	m.Calls.UpdateTaskStatus = append(m.Calls.UpdateTaskStatus, UpdateTaskStatusArgs{Id: id, Status: status})
	if m.Impl.UpdateTaskStatus == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.UpdateTaskStatus(ctx, id, status)
}

func (m *Client) DeleteTask(ctx context.Context, id int64) error {
	m.t.Helper()
	m.Calls.DeleteTask = append(m.Calls.DeleteTask, id)
	if m.Impl.DeleteTask == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.DeleteTask(ctx, id)
}

func (m *Client) TasksOfUser(ctx context.Context, userId int64) ([]apitasks.Detail, error) {
	m.t.Helper()
	m.Calls.TasksOfUser = append(m.Calls.TasksOfUser, userId)
	if m.Impl.TasksOfUser == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.TasksOfUser(ctx, userId)
}

func (m *Client) SearchTasks(ctx context.Context, tag string, exact bool) ([]apitasks.Detail, error) {
	m.t.Helper()
	m.Calls.SearchTasks = append(m.Calls.SearchTasks, SearchTasksArgs{Tag: tag, Exact: exact})
	if m.Impl.SearchTasks == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.SearchTasks(ctx, tag, exact)
}

func (m *Client) Stats(ctx context.Context) (apitasks.Stats, error) {
	m.t.Helper()
	m.Calls.Stats += 1
	if m.Impl.Stats == nil {
		m.t.Fatal(notImplemented())
	}
	return m.Impl.Stats(ctx)
}
