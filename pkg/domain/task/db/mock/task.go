package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/taskboard/taskboard/pkg/domain"
	dbmock "github.com/taskboard/taskboard/pkg/domain/internal/db/mock"
	kdb "github.com/taskboard/taskboard/pkg/domain/task/db"
)

type TaskUpdateArgs struct {
	Id     int64
	Change domain.TaskChange
}

type TaskSetStatusArgs struct {
	Id     int64
	Status domain.TaskStatus
}

type TaskInterface struct {
	t *testing.T

	Impl struct {
		Create    func(ctx context.Context, spec domain.TaskSpec) (domain.Task, error)
		Get       func(ctx context.Context, id int64) (domain.Task, error)
		Find      func(ctx context.Context, query domain.TaskQuery) ([]domain.Task, error)
		Update    func(ctx context.Context, id int64, change domain.TaskChange) (domain.Task, error)
		SetStatus func(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error)
		Delete    func(ctx context.Context, id int64) error
	}

	Calls struct {
		Create    dbmock.CallLog[domain.TaskSpec]
		Get       dbmock.CallLog[int64]
		Find      dbmock.CallLog[domain.TaskQuery]
		Update    dbmock.CallLog[TaskUpdateArgs]
		SetStatus dbmock.CallLog[TaskSetStatusArgs]
		Delete    dbmock.CallLog[int64]
	}
}

func NewTaskInterface(t *testing.T) *TaskInterface {
	return &TaskInterface{t: t}
}

var _ kdb.TaskInterface = &TaskInterface{}

func (m *TaskInterface) Create(ctx context.Context, spec domain.TaskSpec) (domain.Task, error) {
	m.t.Helper()
	m.Calls.Create = append(m.Calls.Create, spec)
	if m.Impl.Create == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Create(ctx, spec)
}

func (m *TaskInterface) Get(ctx context.Context, id int64) (domain.Task, error) {
	m.t.Helper()
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Get(ctx, id)
}

func (m *TaskInterface) Find(ctx context.Context, query domain.TaskQuery) ([]domain.Task, error) {
	m.t.Helper()
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Find(ctx, query)
}

func (m *TaskInterface) Update(ctx context.Context, id int64, change domain.TaskChange) (domain.Task, error) {
	m.t.Helper()
	m.Calls.Update = append(m.Calls.Update, TaskUpdateArgs{Id: id, Change: change})
	if m.Impl.Update == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Update(ctx, id, change)
}

func (m *TaskInterface) SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error) {
	m.t.Helper()
	m.Calls.SetStatus = append(m.Calls.SetStatus, TaskSetStatusArgs{Id: id, Status: status})
	if m.Impl.SetStatus == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.SetStatus(ctx, id, status)
}

func (m *TaskInterface) Delete(ctx context.Context, id int64) error {
	m.t.Helper()
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete == nil {
		panic(errors.New("it should not be called"))
	}
	return m.Impl.Delete(ctx, id)
}
