package rest

import (
	"context"
	"fmt"
	"time"

	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/kanban"
	"golang.org/x/sync/errgroup"
)

// Dashboard is what the board is drawn from.
type Dashboard struct {
	Users []apiusers.Detail
	Tasks []apitasks.Detail
}

// FetchDashboard gets users and tasks concurrently.
//
// When either fails, the other is cancelled.
func FetchDashboard(ctx context.Context, c Client) (Dashboard, error) {
	var d Dashboard
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		users, err := c.ListUsers(ctx, "")
		if err != nil {
			return err
		}
		d.Users = users
		return nil
	})
	eg.Go(func() error {
		tasks, err := c.ListTasks(ctx)
		if err != nil {
			return err
		}
		d.Tasks = tasks
		return nil
	})
	if err := eg.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// Board maps the dashboard onto the board model.
func (d Dashboard) Board(now time.Time) ([]kanban.Task, []kanban.User) {
	tasks := make([]kanban.Task, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		tasks = append(tasks, kanban.TaskFromDetail(t, now))
	}
	users := make([]kanban.User, 0, len(d.Users))
	for _, u := range d.Users {
		users = append(users, kanban.UserFromDetail(u))
	}
	return tasks, users
}

type boardSource struct {
	client Client
	clock  func() time.Time
}

// BoardSource makes a Client a source of kanban.Board.
func BoardSource(c Client, clock func() time.Time) kanban.Source {
	return &boardSource{client: c, clock: clock}
}

func (s *boardSource) Tasks(ctx context.Context) ([]kanban.Task, error) {
	ds, err := s.client.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	ret := make([]kanban.Task, 0, len(ds))
	for _, d := range ds {
		ret = append(ret, kanban.TaskFromDetail(d, now))
	}
	return ret, nil
}

func (s *boardSource) UpdateStatus(ctx context.Context, id string, status kanban.Status) error {
	n, err := kanban.ParseId(id)
	if err != nil {
		return fmt.Errorf("task id %q: %w", id, err)
	}
	_, err = s.client.UpdateTaskStatus(ctx, n, kanban.StatusToBackend(status).String())
	return err
}
