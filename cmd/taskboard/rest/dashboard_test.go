package rest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboard/rest/mock"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/kanban"
	"github.com/taskboard/taskboard/pkg/utils/rfctime"
	"github.com/taskboard/taskboard/pkg/utils/try"
)

func TestFetchDashboard(t *testing.T) {
	t.Run("it fetches users and tasks", func(t *testing.T) {
		ctx := context.Background()
		testee := serve(t)

		got := try.To(rest.FetchDashboard(ctx, testee)).OrFatal(t)
		if len(got.Users) != 5 || len(got.Tasks) != 6 {
			t.Errorf("dashboard: %d users, %d tasks", len(got.Users), len(got.Tasks))
		}

		tasks, users := got.Board(clock())
		if users[0].Name != "João Silva Oliveira" {
			t.Errorf("user: %+v", users[0])
		}
		columns := kanban.Columns(tasks)
		counts := map[kanban.Status]int{}
		for _, c := range columns {
			counts[c.Status] = len(c.Tasks)
		}
		want := map[kanban.Status]int{kanban.Todo: 3, kanban.InProgress: 1, kanban.Review: 1, kanban.Done: 1}
		if diff := cmp.Diff(want, counts); diff != "" {
			t.Errorf("columns (-want +got):\n%s", diff)
		}
	})

	t.Run("it fails when either fails", func(t *testing.T) {
		expected := errors.New("fake error")
		client := mock.New(t)
		client.Impl.ListUsers = func(ctx context.Context, name string) ([]apiusers.Detail, error) {
			return nil, expected
		}
		client.Impl.ListTasks = func(ctx context.Context) ([]apitasks.Detail, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}

		_, err := rest.FetchDashboard(context.Background(), client)
		if !errors.Is(err, expected) {
			t.Errorf("error: %v", err)
		}
	})
}

func TestBoardSource(t *testing.T) {
	now := time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC)
	created := rfctime.RFC3339(now.Add(-time.Hour))

	t.Run("it reads tasks as the board's", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.ListTasks = func(context.Context) ([]apitasks.Detail, error) {
			return []apitasks.Detail{
				{
					Id: 3, Title: "batch", Status: "CANCELLED", Priority: "2",
					Creator: apiusers.Detail{Id: 2}, Assignee: apiusers.Detail{Id: 3},
					CreatedAt: created,
				},
			}, nil
		}

		got := try.To(rest.BoardSource(client, func() time.Time { return now }).Tasks(context.Background())).OrFatal(t)
		want := []kanban.Task{{
			Id: "3", Title: "batch", Status: kanban.Review, Priority: kanban.Medium,
			Creator: "2", Assignee: "3", Tags: []string{},
			CreatedAt: created.Time(), UpdatedAt: now,
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("tasks (-want +got):\n%s", diff)
		}
	})

	t.Run("it sends statuses in the API's", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.UpdateTaskStatus = func(_ context.Context, id int64, status string) (apitasks.Detail, error) {
			return apitasks.Detail{Id: id, Status: status}, nil
		}

		testee := rest.BoardSource(client, time.Now)
		if err := testee.UpdateStatus(context.Background(), "4", kanban.Done); err != nil {
			t.Fatal(err)
		}
		want := []mock.UpdateTaskStatusArgs{{Id: 4, Status: "COMPLETED"}}
		if diff := cmp.Diff(want, client.Calls.UpdateTaskStatus); diff != "" {
			t.Errorf("calls (-want +got):\n%s", diff)
		}

		if err := testee.UpdateStatus(context.Background(), "x", kanban.Done); err == nil {
			t.Error("bad id is sent")
		}
	})
}
