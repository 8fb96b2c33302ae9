package rest_test

import (
	"context"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	kprof "github.com/taskboard/taskboard/cmd/taskboard/config/profiles"
	cerr "github.com/taskboard/taskboard/cmd/taskboard/errors"
	"github.com/taskboard/taskboard/cmd/taskboard/rest"
	"github.com/taskboard/taskboard/cmd/taskboardd/handlers"
	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/domain/taskboard/db/memory"
	"github.com/taskboard/taskboard/pkg/utils/rfctime"
	"github.com/taskboard/taskboard/pkg/utils/try"
)

// "today" is 2025-06-25.
func clock() time.Time {
	return time.Date(2025, time.June, 25, 15, 30, 0, 0, time.UTC)
}

// serve starts a taskboard API on the fixtures, and returns a client of it.
func serve(t *testing.T) rest.Client {
	t.Helper()
	e := try.To(handlers.New(memory.Sample(memory.WithClock(clock)), clock)).OrFatal(t)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	prof := &kprof.Profile{ApiRoot: server.URL + "/api"}
	return try.To(rest.NewClient(prof)).OrFatal(t)
}

func ids(ds []apitasks.Detail) []int64 {
	ret := []int64{}
	for _, d := range ds {
		ret = append(ret, d.Id)
	}
	return ret
}

func date(s string) *rfctime.Date {
	d, err := rfctime.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestClient_Users(t *testing.T) {
	ctx := context.Background()

	t.Run("it lists and filters users", func(t *testing.T) {
		testee := serve(t)
		all := try.To(testee.ListUsers(ctx, "")).OrFatal(t)
		if len(all) != 5 {
			t.Errorf("users: %d", len(all))
		}

		found := try.To(testee.ListUsers(ctx, "  santos ")).OrFatal(t)
		got := []int64{}
		for _, u := range found {
			got = append(got, u.Id)
		}
		if diff := cmp.Diff([]int64{2, 3}, got); diff != "" {
			t.Errorf("found (-want +got):\n%s", diff)
		}
	})

	t.Run("it creates, updates and deletes a user", func(t *testing.T) {
		testee := serve(t)
		created := try.To(testee.CreateUser(ctx, apiusers.Spec{
			FirstName: "Beatriz", LastName: "Lima", BirthDate: date("2000-02-29"),
		})).OrFatal(t)
		if created.Id == 0 || created.Age != 25 {
			t.Errorf("created: %+v", created)
		}

		updated := try.To(testee.UpdateUser(ctx, created.Id, apiusers.Spec{
			FirstName: "Beatriz", LastName: "Lima Rocha", BirthDate: date("2000-02-29"),
		})).OrFatal(t)
		if updated.FullName() != "Beatriz Lima Rocha" {
			t.Errorf("updated: %+v", updated)
		}

		if err := testee.DeleteUser(ctx, created.Id); err != nil {
			t.Fatal(err)
		}
		_, err := testee.GetUser(ctx, created.Id)
		if code, ok := rest.StatusCodeOf(err); !ok || code != http.StatusNotFound {
			t.Errorf("get deleted user: %v", err)
		}
	})

	t.Run("it reports reason and advice of errors", func(t *testing.T) {
		testee := serve(t)
		_, err := testee.CreateUser(ctx, apiusers.Spec{FirstName: "Ana", LastName: "Lima", BirthDate: date("2010-01-01")})

		ce := new(cerr.CUIError)
		if !errors.As(err, ce) {
			t.Fatalf("not a CUIError: %v", err)
		}
		want := "user is not created\n  reason: Validation failed\n  advice: User must be at least 18 years old"
		if got := err.Error(); got != want {
			t.Errorf("message:\n%s", got)
		}

		re := new(rest.ResponseError)
		if !errors.As(err, &re) {
			t.Fatalf("not a ResponseError: %v", err)
		}
		if re.StatusCode != http.StatusBadRequest || re.Message.Advice != "User must be at least 18 years old" {
			t.Errorf("response error: %+v", re)
		}
	})

	t.Run("it fails to delete a user with tasks", func(t *testing.T) {
		testee := serve(t)
		err := testee.DeleteUser(ctx, 1)
		if code, _ := rest.StatusCodeOf(err); code != http.StatusConflict {
			t.Errorf("error: %v", err)
		}
	})
}

func TestClient_Tasks(t *testing.T) {
	ctx := context.Background()

	t.Run("it lists and searches tasks", func(t *testing.T) {
		testee := serve(t)
		for name, testcase := range map[string]struct {
			when func() ([]apitasks.Detail, error)
			then []int64
		}{
			"all": {
				when: func() ([]apitasks.Detail, error) { return testee.ListTasks(ctx) },
				then: []int64{1, 2, 3, 4, 5, 6},
			},
			"of user": {
				when: func() ([]apitasks.Detail, error) { return testee.TasksOfUser(ctx, 1) },
				then: []int64{1, 6},
			},
			"by partial tag": {
				when: func() ([]apitasks.Detail, error) { return testee.SearchTasks(ctx, "sql", false) },
				then: []int64{2},
			},
			"by exact tag": {
				when: func() ([]apitasks.Detail, error) { return testee.SearchTasks(ctx, "sql", true) },
				then: []int64{},
			},
		} {
			t.Run(name, func(t *testing.T) {
				got := try.To(testcase.when()).OrFatal(t)
				if diff := cmp.Diff(testcase.then, ids(got)); diff != "" {
					t.Errorf("ids (-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("it creates, moves, updates and deletes a task", func(t *testing.T) {
		testee := serve(t)
		creator := apitasks.UserRef{Id: 1}
		assignee := apitasks.UserRef{Id: 2}
		created := try.To(testee.CreateTask(ctx, apitasks.Spec{
			Title: "Revisar JCL", Description: "Revisar os scripts JCL de deploy.",
			EndDate: date("2025-07-01"),
			Creator: &creator, Assignee: &assignee,
			Tags: []string{"JCL"}, Priority: "LOW", Status: "PENDING",
		})).OrFatal(t)
		if created.Assignee.Id != 2 || created.EndDate.String() != "2025-07-01" {
			t.Errorf("created: %+v", created)
		}

		moved := try.To(testee.UpdateTaskStatus(ctx, created.Id, "COMPLETED")).OrFatal(t)
		if moved.Status != "COMPLETED" {
			t.Errorf("moved: %+v", moved)
		}

		title := "Revisar JCL de folha"
		updated := try.To(testee.UpdateTask(ctx, created.Id, apitasks.Change{Title: &title})).OrFatal(t)
		if updated.Title != title || updated.Status != "COMPLETED" {
			t.Errorf("updated: %+v", updated)
		}

		stats := try.To(testee.Stats(ctx)).OrFatal(t)
		if want := (apitasks.Stats{Total: 7, Completed: 2, InProgress: 1}); stats != want {
			t.Errorf("stats: got %+v, want %+v", stats, want)
		}

		if err := testee.DeleteTask(ctx, created.Id); err != nil {
			t.Fatal(err)
		}
		_, err := testee.GetTask(ctx, created.Id)
		if code, _ := rest.StatusCodeOf(err); code != http.StatusNotFound {
			t.Errorf("get deleted task: %v", err)
		}
	})

	t.Run("it reports an unknown status", func(t *testing.T) {
		testee := serve(t)
		_, err := testee.UpdateTaskStatus(ctx, 1, "DONE")
		if code, _ := rest.StatusCodeOf(err); code != http.StatusBadRequest {
			t.Errorf("error: %v", err)
		}
	})
}

func TestClient_BrokenServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream is down"))
	}))
	defer server.Close()

	testee := try.To(rest.NewClient(&kprof.Profile{ApiRoot: server.URL + "/api/"})).OrFatal(t)
	_, err := testee.ListTasks(context.Background())
	if err == nil {
		t.Fatal("no error")
	}
	if want := "server error (status code = 502)\nupstream is down"; err.Error() != want {
		t.Errorf("message:\n%s", err.Error())
	}
	re := new(rest.ResponseError)
	if !errors.As(err, &re) || re.Method != http.MethodGet || re.URL != server.URL+"/api/tasks" {
		t.Errorf("response error: %+v", re)
	}
}

func TestNewClient(t *testing.T) {
	t.Run("it rejects invalid profile", func(t *testing.T) {
		_, err := rest.NewClient(&kprof.Profile{ApiRoot: "localhost"})
		if !errors.Is(err, kprof.ErrProfileInvalid) {
			t.Errorf("error: %v", err)
		}
	})

	t.Run("it trusts CA given", func(t *testing.T) {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"total": 1, "completed": 0, "inProgress": 1, "overdue": 0}`))
		}))
		defer server.Close()

		ca := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
		prof := &kprof.Profile{
			ApiRoot: server.URL + "/api",
			Cert:    kprof.Cert{CA: base64.StdEncoding.EncodeToString(ca)},
		}
		testee := try.To(rest.NewClient(prof)).OrFatal(t)
		got := try.To(testee.Stats(context.Background())).OrFatal(t)
		if got != (apitasks.Stats{Total: 1, InProgress: 1}) {
			t.Errorf("stats: %+v", got)
		}

		untrusting := try.To(rest.NewClient(&kprof.Profile{ApiRoot: server.URL + "/api"})).OrFatal(t)
		if _, err := untrusting.Stats(context.Background()); err == nil {
			t.Error("unknown CA is trusted")
		}
	})
}
