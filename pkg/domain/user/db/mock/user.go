package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/taskboard/pkg/domain"
	dbmock "github.com/taskboard/taskboard/pkg/domain/internal/db/mock"
	kdb "github.com/taskboard/taskboard/pkg/domain/user/db"
)

type UserUpdateArgs struct {
	Id   int64
	Spec domain.UserSpec
}

type UserInterface struct {
	t *testing.T

	Impl struct {
		Create func(ctx context.Context, spec domain.UserSpec) (domain.User, error)
		Get    func(ctx context.Context, id int64) (domain.User, error)
		List   func(ctx context.Context, query domain.UserQuery) ([]domain.User, error)
		Update func(ctx context.Context, id int64, spec domain.UserSpec) (domain.User, error)
		Delete func(ctx context.Context, id int64) error
	}

	Calls struct {
		Create dbmock.CallLog[domain.UserSpec]
		Get    dbmock.CallLog[int64]
		List   dbmock.CallLog[domain.UserQuery]
		Update dbmock.CallLog[UserUpdateArgs]
		Delete dbmock.CallLog[int64]
	}
}

func NewUserInterface(t *testing.T) *UserInterface {
	return &UserInterface{t: t}
}

var _ kdb.UserInterface = &UserInterface{}

func (m *UserInterface) Create(ctx context.Context, spec domain.UserSpec) (domain.User, error) {
	m.t.Helper()
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Create(ctx, spec)
}

func (m *UserInterface) Get(ctx context.Context, id int64) (domain.User, error) {
	m.t.Helper()
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Get(ctx, id)
}

func (m *UserInterface) List(ctx context.Context, query domain.UserQuery) ([]domain.User, error) {
	m.t.Helper()
	m.Calls.List = append(m.Calls.List, query)
	if m.Impl.List == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.List(ctx, query)
}

func (m *UserInterface) Update(ctx context.Context, id int64, spec domain.UserSpec) (domain.User, error) {
	m.t.Helper()
	m.Calls.Update = append(m.Calls.Update, UserUpdateArgs{Id: id, Spec: spec})
	if m.Impl.Update == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Update(ctx, id, spec)
}

func (m *UserInterface) Delete(ctx context.Context, id int64) error {
	m.t.Helper()
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Delete(ctx, id)
}
