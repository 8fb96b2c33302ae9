package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/taskboard/taskboard/cmd/taskboardd/handlers"
	httptestutil "github.com/taskboard/taskboard/internal/testutils/http"
	apierr "github.com/taskboard/taskboard/pkg/api/types/errors"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/domain"
	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
	"github.com/taskboard/taskboard/pkg/domain/errors/dberrors"
	mockuser "github.com/taskboard/taskboard/pkg/domain/user/db/mock"
	"github.com/taskboard/taskboard/pkg/utils/rfctime"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// now of tests. "today" is 2025-06-25.
var clock handlers.Clock = func() time.Time {
	return time.Date(2025, time.June, 25, 15, 30, 0, 0, time.UTC)
}

var maria = domain.User{Id: 2, FirstName: "Maria", LastName: "Souza Santos", BirthDate: date(1985, time.May, 15)}

// asHTTPError asserts err is an *echo.HTTPError with code, and returns its message.
func asHTTPError(t *testing.T, err error, code int) apierr.ErrorMessage {
	t.Helper()
	he := new(echo.HTTPError)
	if !errors.As(err, &he) {
		t.Fatalf("not an HTTPError: %v", err)
	}
	if he.Code != code {
		t.Errorf("status code: got %d, want %d (%v)", he.Code, code, err)
	}
	msg, ok := he.Message.(apierr.ErrorMessage)
	if !ok {
		t.Fatalf("message is not an ErrorMessage: %#v", he.Message)
	}
	return msg
}

func TestCreateUserHandler(t *testing.T) {
	t.Run("it creates a valid user", func(t *testing.T) {
		dbUser := mockuser.NewUserInterface(t)
		dbUser.Impl.Create = func(_ context.Context, spec domain.UserSpec) (domain.User, error) {
			return maria, nil
		}

		e := echo.New()
		c, resp := httptestutil.Post(e, "/api/users/", strings.NewReader(
			`{"firstName": "Maria", "lastName": "Souza Santos", "birthDate": "1985-05-15"}`,
		))

		if err := handlers.CreateUserHandler(dbUser, clock)(c); err != nil {
			t.Fatal(err)
		}

		if resp.Code != http.StatusCreated {
			t.Errorf("status code: %d", resp.Code)
		}
		wantSpec := domain.UserSpec{FirstName: "Maria", LastName: "Souza Santos", BirthDate: date(1985, time.May, 15)}
		if diff := cmp.Diff([]domain.UserSpec{wantSpec}, []domain.UserSpec(dbUser.Calls.Create)); diff != "" {
			t.Errorf("spec (-want +got):\n%s", diff)
		}

		var got apiusers.Detail
		if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		want := apiusers.Detail{
			Id: 2, FirstName: "Maria", LastName: "Souza Santos",
			BirthDate: rfctime.NewDate(date(1985, time.May, 15)), Age: 40,
		}
		if !got.Equal(want) {
			t.Errorf("body: got %+v, want %+v", got, want)
		}
	})

	for name, testcase := range map[string]struct {
		body       string
		thenAdvice string
	}{
		"empty object": {
			body:       `{}`,
			thenAdvice: "Birth date is required; First name is required; Last name is required",
		},
		"too young": {
			body:       `{"firstName": "Ana", "lastName": "Lima", "birthDate": "2010-01-01"}`,
			thenAdvice: "User must be at least 18 years old",
		},
	} {
		t.Run("it rejects invalid user: "+name, func(t *testing.T) {
			dbUser := mockuser.NewUserInterface(t)

			e := echo.New()
			c, _ := httptestutil.Post(e, "/api/users/", strings.NewReader(testcase.body))
			err := handlers.CreateUserHandler(dbUser, clock)(c)

			msg := asHTTPError(t, err, http.StatusBadRequest)
			if msg.Advice != testcase.thenAdvice {
				t.Errorf("advice: got %q, want %q", msg.Advice, testcase.thenAdvice)
			}
			if dbUser.Calls.Create.Times() != 0 {
				t.Error("user is created")
			}
		})
	}

	t.Run("it rejects malformed body", func(t *testing.T) {
		dbUser := mockuser.NewUserInterface(t)

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/users/", strings.NewReader(`{"birthDate": "yesterday"}`))
		err := handlers.CreateUserHandler(dbUser, clock)(c)
		asHTTPError(t, err, http.StatusBadRequest)
	})
}

func TestListUserHandler(t *testing.T) {
	dbUser := mockuser.NewUserInterface(t)
	dbUser.Impl.List = func(_ context.Context, q domain.UserQuery) ([]domain.User, error) {
		return []domain.User{maria}, nil
	}

	e := echo.New()
	c, resp := httptestutil.Get(e, "/api/users/?name=+souza+")
	if err := handlers.ListUserHandler(dbUser, clock)(c); err != nil {
		t.Fatal(err)
	}

	if q, _ := dbUser.Calls.List.Last(); q.Name != "souza" {
		t.Errorf("query: %+v", q)
	}
	var got []apiusers.Detail
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Id != 2 || got[0].Age != 40 {
		t.Errorf("body: %+v", got)
	}
}

func TestGetUserHandler(t *testing.T) {
	t.Run("it responds a user", func(t *testing.T) {
		dbUser := mockuser.NewUserInterface(t)
		dbUser.Impl.Get = func(_ context.Context, id int64) (domain.User, error) {
			return maria, nil
		}

		e := echo.New()
		c, resp := httptestutil.Get(e, "/api/users/2/")
		c.SetParamNames("userId")
		c.SetParamValues("2")

		if err := handlers.GetUserHandler(dbUser, clock, "userId")(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("status code: %d", resp.Code)
		}
		if id, _ := dbUser.Calls.Get.Last(); id != 2 {
			t.Errorf("id: %d", id)
		}
	})

	t.Run("it responds 404 for missing user", func(t *testing.T) {
		dbUser := mockuser.NewUserInterface(t)
		dbUser.Impl.Get = func(_ context.Context, id int64) (domain.User, error) {
			return domain.User{}, dberrors.Missing{Table: "user", Identity: fmt.Sprint(id)}
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/users/9/")
		c.SetParamNames("userId")
		c.SetParamValues("9")

		msg := asHTTPError(t, handlers.GetUserHandler(dbUser, clock, "userId")(c), http.StatusNotFound)
		if msg.Reason != "User not found" {
			t.Errorf("reason: %q", msg.Reason)
		}
	})

	for _, bad := range []string{"abc", "0", "-1"} {
		t.Run("it rejects id "+bad, func(t *testing.T) {
			dbUser := mockuser.NewUserInterface(t)

			e := echo.New()
			c, _ := httptestutil.Get(e, "/api/users/x/")
			c.SetParamNames("userId")
			c.SetParamValues(bad)

			asHTTPError(t, handlers.GetUserHandler(dbUser, clock, "userId")(c), http.StatusBadRequest)
		})
	}
}

func TestUpdateUserHandler(t *testing.T) {
	dbUser := mockuser.NewUserInterface(t)
	dbUser.Impl.Update = func(_ context.Context, id int64, spec domain.UserSpec) (domain.User, error) {
		return domain.User{Id: id, FirstName: spec.FirstName, LastName: spec.LastName, BirthDate: spec.BirthDate}, nil
	}

	e := echo.New()
	c, resp := httptestutil.Put(e, "/api/users/2/", strings.NewReader(
		`{"firstName": "Maria", "lastName": "Souza", "birthDate": "19850515"}`,
	))
	c.SetParamNames("userId")
	c.SetParamValues("2")

	if err := handlers.UpdateUserHandler(dbUser, clock, "userId")(c); err != nil {
		t.Fatal(err)
	}
	if resp.Code != http.StatusOK {
		t.Errorf("status code: %d", resp.Code)
	}
	args, _ := dbUser.Calls.Update.Last()
	if args.Id != 2 || args.Spec.LastName != "Souza" || !args.Spec.BirthDate.Equal(date(1985, time.May, 15)) {
		t.Errorf("args: %+v", args)
	}
}

func TestDeleteUserHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		err      error
		thenCode int
	}{
		"deleted":   {err: nil, thenCode: http.StatusNoContent},
		"missing":   {err: dberrors.Missing{Table: "user", Identity: "2"}, thenCode: http.StatusNotFound},
		"in use":    {err: fmt.Errorf("%w (user id = 2)", domerr.ErrUserInUse), thenCode: http.StatusConflict},
		"db broken": {err: errors.New("connection lost"), thenCode: http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			dbUser := mockuser.NewUserInterface(t)
			dbUser.Impl.Delete = func(context.Context, int64) error { return testcase.err }

			e := echo.New()
			c, resp := httptestutil.Delete(e, "/api/users/2/")
			c.SetParamNames("userId")
			c.SetParamValues("2")

			err := handlers.DeleteUserHandler(dbUser, "userId")(c)
			if testcase.err == nil {
				if err != nil {
					t.Fatal(err)
				}
				if resp.Code != testcase.thenCode {
					t.Errorf("status code: %d", resp.Code)
				}
				return
			}
			asHTTPError(t, err, testcase.thenCode)
		})
	}
}
