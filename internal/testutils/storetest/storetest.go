// Package storetest checks behaviors shared by all implementations of the taskboard database.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/taskboard/taskboard/pkg/domain"
	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	"github.com/taskboard/taskboard/pkg/utils/try"
)

// Factory returns an empty database. It is called once per subtest.
type Factory func(t *testing.T) kdb.Database

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

var ignoreTimestamps = cmpopts.IgnoreFields(domain.Task{}, "CreatedAt", "UpdatedAt")

// Run runs the whole suite against databases made by newDB.
func Run(t *testing.T, newDB Factory) {
	t.Run("users", func(t *testing.T) { users(t, newDB) })
	t.Run("tasks", func(t *testing.T) { tasks(t, newDB) })
}

func users(t *testing.T, newDB Factory) {
	ctx := context.Background()

	maria := domain.UserSpec{FirstName: "Maria", LastName: "Souza Santos", BirthDate: date(1985, time.May, 15)}
	pedro := domain.UserSpec{FirstName: "Pedro", LastName: "Santos Costa", BirthDate: date(1992, time.November, 20)}
	ana := domain.UserSpec{FirstName: "Ana", LastName: "Oliveira Ferreira", BirthDate: date(1988, time.July, 7)}

	t.Run("created users can be got and listed in id order", func(t *testing.T) {
		db := newDB(t)
		u := db.Users()

		m := try.To(u.Create(ctx, maria)).OrFatal(t)
		p := try.To(u.Create(ctx, pedro)).OrFatal(t)
		if m.Id == 0 || p.Id <= m.Id {
			t.Fatalf("ids are not assigned in order: %d, %d", m.Id, p.Id)
		}

		want := domain.User{Id: m.Id, FirstName: "Maria", LastName: "Souza Santos", BirthDate: date(1985, time.May, 15)}
		if diff := cmp.Diff(want, m); diff != "" {
			t.Errorf("created (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, try.To(u.Get(ctx, m.Id)).OrFatal(t)); diff != "" {
			t.Errorf("got (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]domain.User{m, p}, try.To(u.List(ctx, domain.UserQuery{})).OrFatal(t)); diff != "" {
			t.Errorf("listed (-want +got):\n%s", diff)
		}
	})

	t.Run("users are searched by names ignoring cases", func(t *testing.T) {
		db := newDB(t)
		u := db.Users()

		m := try.To(u.Create(ctx, maria)).OrFatal(t)
		p := try.To(u.Create(ctx, pedro)).OrFatal(t)
		a := try.To(u.Create(ctx, ana)).OrFatal(t)

		for term, want := range map[string][]domain.User{
			"santos": {m, p},
			"ANA":    {a},
			"oliv":   {a},
			"zz":     {},
		} {
			got := try.To(u.List(ctx, domain.UserQuery{Name: term})).OrFatal(t)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%q (-want +got):\n%s", term, diff)
			}
		}
	})

	t.Run("user is replaced by update", func(t *testing.T) {
		db := newDB(t)
		u := db.Users()

		m := try.To(u.Create(ctx, maria)).OrFatal(t)
		got := try.To(u.Update(ctx, m.Id, pedro)).OrFatal(t)

		want := domain.User{Id: m.Id, FirstName: "Pedro", LastName: "Santos Costa", BirthDate: date(1992, time.November, 20)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, try.To(u.Get(ctx, m.Id)).OrFatal(t)); diff != "" {
			t.Errorf("stored (-want +got):\n%s", diff)
		}
	})

	t.Run("missing users are reported", func(t *testing.T) {
		db := newDB(t)
		u := db.Users()

		if _, err := u.Get(ctx, 9999); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Get: unexpected error: %v", err)
		}
		if _, err := u.Update(ctx, 9999, maria); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Update: unexpected error: %v", err)
		}
		if err := u.Delete(ctx, 9999); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Delete: unexpected error: %v", err)
		}
	})

	t.Run("deleted user is gone", func(t *testing.T) {
		db := newDB(t)
		u := db.Users()

		m := try.To(u.Create(ctx, maria)).OrFatal(t)
		if err := u.Delete(ctx, m.Id); err != nil {
			t.Fatal(err)
		}
		if _, err := u.Get(ctx, m.Id); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("users referred by tasks cannot be deleted", func(t *testing.T) {
		db := newDB(t)
		creator := try.To(db.Users().Create(ctx, maria)).OrFatal(t)
		assignee := try.To(db.Users().Create(ctx, pedro)).OrFatal(t)
		try.To(db.Tasks().Create(ctx, domain.TaskSpec{
			Title: "title", Description: "description",
			CreatorId: creator.Id, AssigneeId: assignee.Id,
			Priority: domain.Low, Status: domain.Pending,
		})).OrFatal(t)

		for _, id := range []int64{creator.Id, assignee.Id} {
			err := db.Users().Delete(ctx, id)
			if !errors.Is(err, domerr.ErrUserInUse) || !errors.Is(err, domerr.ErrConflict) {
				t.Errorf("user %d: unexpected error: %v", id, err)
			}
		}
	})
}

func tasks(t *testing.T, newDB Factory) {
	ctx := context.Background()

	setup := func(t *testing.T) (kdb.Database, domain.User, domain.User) {
		db := newDB(t)
		creator := try.To(db.Users().Create(ctx, domain.UserSpec{
			FirstName: "João", LastName: "Silva Oliveira", BirthDate: date(1990, time.January, 1),
		})).OrFatal(t)
		assignee := try.To(db.Users().Create(ctx, domain.UserSpec{
			FirstName: "Maria", LastName: "Souza Santos", BirthDate: date(1985, time.May, 15),
		})).OrFatal(t)
		return db, creator, assignee
	}

	spec := func(creator, assignee domain.User) domain.TaskSpec {
		return domain.TaskSpec{
			Title:       "Analisar Código COBOL Legado",
			Description: "Revisar a estrutura do programa",
			EndDate:     date(2030, time.July, 1),
			CreatorId:   creator.Id,
			AssigneeId:  assignee.Id,
			Tags:        []string{"COBOL", "legado"},
			Priority:    domain.High,
			Status:      domain.Pending,
		}
	}

	t.Run("created task is resolved with its users", func(t *testing.T) {
		db, creator, assignee := setup(t)

		before := time.Now().Add(-time.Minute)
		got := try.To(db.Tasks().Create(ctx, spec(creator, assignee))).OrFatal(t)

		end := date(2030, time.July, 1)
		want := domain.Task{
			Id:          got.Id,
			Title:       "Analisar Código COBOL Legado",
			Description: "Revisar a estrutura do programa",
			EndDate:     &end,
			Creator:     creator,
			Assignee:    assignee,
			Tags:        []string{"COBOL", "legado"},
			Priority:    domain.High,
			Status:      domain.Pending,
		}
		if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
			t.Errorf("created (-want +got):\n%s", diff)
		}
		if got.CreatedAt.Before(before) {
			t.Errorf("createdAt is not set: %v", got.CreatedAt)
		}
		if got.UpdatedAt != nil {
			t.Errorf("updatedAt should be empty: %v", got.UpdatedAt)
		}

		if diff := cmp.Diff(got, try.To(db.Tasks().Get(ctx, got.Id)).OrFatal(t), cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
			t.Errorf("stored (-want +got):\n%s", diff)
		}
	})

	t.Run("task without end date nor tags can be stored", func(t *testing.T) {
		db, creator, assignee := setup(t)

		s := spec(creator, assignee)
		s.EndDate = time.Time{}
		s.Tags = nil
		got := try.To(db.Tasks().Create(ctx, s)).OrFatal(t)
		if got.EndDate != nil {
			t.Errorf("end date: %v", got.EndDate)
		}
		if got.Tags == nil || len(got.Tags) != 0 {
			t.Errorf("tags should be empty, not nil: %#v", got.Tags)
		}
	})

	t.Run("task of missing users cannot be created", func(t *testing.T) {
		db, creator, assignee := setup(t)

		s := spec(creator, assignee)
		s.CreatorId = 9999
		if _, err := db.Tasks().Create(ctx, s); !errors.Is(err, domerr.ErrMissingCreator) {
			t.Errorf("missing creator: unexpected error: %v", err)
		}

		s = spec(creator, assignee)
		s.AssigneeId = 9999
		if _, err := db.Tasks().Create(ctx, s); !errors.Is(err, domerr.ErrMissingAssignee) {
			t.Errorf("missing assignee: unexpected error: %v", err)
		}

		if got := try.To(db.Tasks().Find(ctx, domain.TaskQuery{})).OrFatal(t); len(got) != 0 {
			t.Errorf("tasks are created: %v", got)
		}
	})

	t.Run("tasks are found by assignee and tags", func(t *testing.T) {
		db, creator, assignee := setup(t)

		s1 := spec(creator, assignee)
		s1.Tags = []string{"COBOL", "legado"}
		t1 := try.To(db.Tasks().Create(ctx, s1)).OrFatal(t)

		s2 := spec(creator, creator)
		s2.Tags = []string{"batch", "cobol-batch"}
		t2 := try.To(db.Tasks().Create(ctx, s2)).OrFatal(t)

		s3 := spec(assignee, assignee)
		s3.Tags = []string{"SQL"}
		t3 := try.To(db.Tasks().Create(ctx, s3)).OrFatal(t)

		ids := func(ts []domain.Task) []int64 {
			ret := []int64{}
			for _, t := range ts {
				ret = append(ret, t.Id)
			}
			return ret
		}

		for name, testcase := range map[string]struct {
			when domain.TaskQuery
			then []int64
		}{
			"all":                {when: domain.TaskQuery{}, then: []int64{t1.Id, t2.Id, t3.Id}},
			"by assignee":        {when: domain.TaskQuery{AssigneeId: ptr(assignee.Id)}, then: []int64{t1.Id, t3.Id}},
			"by partial tag":     {when: domain.TaskQuery{Tag: "cobol"}, then: []int64{t1.Id, t2.Id}},
			"by exact tag":       {when: domain.TaskQuery{Tag: "COBOL", ExactTag: true}, then: []int64{t1.Id}},
			"exact tag not hit":  {when: domain.TaskQuery{Tag: "cobol", ExactTag: true}, then: []int64{}},
			"assignee and tag":   {when: domain.TaskQuery{AssigneeId: ptr(assignee.Id), Tag: "sq"}, then: []int64{t3.Id}},
			"assignee not found": {when: domain.TaskQuery{AssigneeId: ptr[int64](9999)}, then: []int64{}},
		} {
			t.Run(name, func(t *testing.T) {
				got := try.To(db.Tasks().Find(ctx, testcase.when)).OrFatal(t)
				if diff := cmp.Diff(testcase.then, ids(got)); diff != "" {
					t.Errorf("(-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("update changes given fields", func(t *testing.T) {
		db, creator, assignee := setup(t)
		created := try.To(db.Tasks().Create(ctx, spec(creator, assignee))).OrFatal(t)

		newEnd := date(2031, time.January, 2)
		got := try.To(db.Tasks().Update(ctx, created.Id, domain.TaskChange{
			Title:      ptr("new title"),
			EndDate:    &newEnd,
			Tags:       []string{"x"},
			Status:     ptr(domain.InProgress),
			AssigneeId: ptr(creator.Id),
		})).OrFatal(t)

		want := created
		want.Title = "new title"
		want.EndDate = &newEnd
		want.Tags = []string{"x"}
		want.Status = domain.InProgress
		want.Assignee = creator
		if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		if got.UpdatedAt == nil {
			t.Error("updatedAt is not set")
		}
	})

	t.Run("update to missing assignee is rejected", func(t *testing.T) {
		db, creator, assignee := setup(t)
		created := try.To(db.Tasks().Create(ctx, spec(creator, assignee))).OrFatal(t)

		_, err := db.Tasks().Update(ctx, created.Id, domain.TaskChange{AssigneeId: ptr[int64](9999)})
		if !errors.Is(err, domerr.ErrMissingAssignee) {
			t.Errorf("unexpected error: %v", err)
		}
		stored := try.To(db.Tasks().Get(ctx, created.Id)).OrFatal(t)
		if stored.Assignee.Id != assignee.Id {
			t.Errorf("assignee is changed: %v", stored.Assignee)
		}
	})

	t.Run("status can be set alone", func(t *testing.T) {
		db, creator, assignee := setup(t)
		created := try.To(db.Tasks().Create(ctx, spec(creator, assignee))).OrFatal(t)

		got := try.To(db.Tasks().SetStatus(ctx, created.Id, domain.Completed)).OrFatal(t)
		want := created
		want.Status = domain.Completed
		if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		if got.UpdatedAt == nil {
			t.Error("updatedAt is not set")
		}
	})

	t.Run("deleted task is gone, and its users can be deleted then", func(t *testing.T) {
		db, creator, assignee := setup(t)
		created := try.To(db.Tasks().Create(ctx, spec(creator, assignee))).OrFatal(t)

		if err := db.Tasks().Delete(ctx, created.Id); err != nil {
			t.Fatal(err)
		}
		if _, err := db.Tasks().Get(ctx, created.Id); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
		if err := db.Users().Delete(ctx, assignee.Id); err != nil {
			t.Errorf("assignee cannot be deleted: %v", err)
		}
	})

	t.Run("missing tasks are reported", func(t *testing.T) {
		db, _, _ := setup(t)

		if _, err := db.Tasks().Get(ctx, 9999); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Get: unexpected error: %v", err)
		}
		if _, err := db.Tasks().Update(ctx, 9999, domain.TaskChange{}); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Update: unexpected error: %v", err)
		}
		if _, err := db.Tasks().SetStatus(ctx, 9999, domain.Completed); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("SetStatus: unexpected error: %v", err)
		}
		if err := db.Tasks().Delete(ctx, 9999); !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("Delete: unexpected error: %v", err)
		}
	})
}
