package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/taskboard/taskboard/internal/testutils/storetest"
	"github.com/taskboard/taskboard/pkg/domain"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	"github.com/taskboard/taskboard/pkg/domain/taskboard/db/memory"
	"github.com/taskboard/taskboard/pkg/utils/try"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) kdb.Database {
		return memory.New()
	})
}

func TestSample(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 25, 12, 0, 0, 0, time.UTC)
	store := memory.Sample(memory.WithClock(func() time.Time { return now }))

	t.Run("it has 5 users and 6 tasks", func(t *testing.T) {
		users := try.To(store.Users().List(ctx, domain.UserQuery{})).OrFatal(t)
		if len(users) != 5 {
			t.Errorf("users: %d", len(users))
		}
		tasks := try.To(store.Tasks().Find(ctx, domain.TaskQuery{})).OrFatal(t)
		if len(tasks) != 6 {
			t.Errorf("tasks: %d", len(tasks))
		}
	})

	t.Run("tasks are resolved with users", func(t *testing.T) {
		got := try.To(store.Tasks().Get(ctx, 6)).OrFatal(t)
		if got.Assignee.FullName() != "João Silva Oliveira" {
			t.Errorf("assignee: %+v", got.Assignee)
		}
		if got.Creator.FullName() != "Carlos Mendes Rodrigues" {
			t.Errorf("creator: %+v", got.Creator)
		}
	})

	t.Run("new records follow ids of fixtures", func(t *testing.T) {
		store := memory.Sample(memory.WithClock(func() time.Time { return now }))

		u := try.To(store.Users().Create(ctx, domain.UserSpec{
			FirstName: "Beatriz", LastName: "Lima", BirthDate: time.Date(1999, time.March, 3, 0, 0, 0, 0, time.UTC),
		})).OrFatal(t)
		if u.Id != 6 {
			t.Errorf("user id: %d", u.Id)
		}

		task := try.To(store.Tasks().Create(ctx, domain.TaskSpec{
			Title: "t", Description: "d", CreatorId: 1, AssigneeId: u.Id,
			Priority: domain.Low, Status: domain.Pending,
		})).OrFatal(t)
		if task.Id != 7 {
			t.Errorf("task id: %d", task.Id)
		}
		if !task.CreatedAt.Equal(now) {
			t.Errorf("createdAt: %v", task.CreatedAt)
		}
	})

	t.Run("fixtures are not shared between stores", func(t *testing.T) {
		a := memory.Sample()
		b := memory.Sample()

		try.To(a.Tasks().SetStatus(ctx, 1, domain.Completed)).OrFatal(t)

		got := try.To(b.Tasks().Get(ctx, 1)).OrFatal(t)
		if got.Status != domain.Pending {
			t.Errorf("status of another store is changed: %s", got.Status)
		}
	})

	t.Run("returned tasks are copies", func(t *testing.T) {
		store := memory.Sample()
		got := try.To(store.Tasks().Get(ctx, 1)).OrFatal(t)
		got.Tags[0] = "changed"

		again := try.To(store.Tasks().Get(ctx, 1)).OrFatal(t)
		if diff := cmp.Diff([]string{"COBOL", "legado", "análise", "manutenção"}, again.Tags); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
}
