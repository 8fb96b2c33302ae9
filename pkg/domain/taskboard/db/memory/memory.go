// Package memory is a volatile storage of taskboard.
//
// It backs the mock layer of the dashboard and tests of upper layers.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/taskboard/taskboard/pkg/domain"
	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
	"github.com/taskboard/taskboard/pkg/domain/errors/dberrors"
	kschema "github.com/taskboard/taskboard/pkg/domain/schema/db"
	ktask "github.com/taskboard/taskboard/pkg/domain/task/db"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	kuser "github.com/taskboard/taskboard/pkg/domain/user/db"
)

// task as stored. Users are referred by id, and resolved on read.
type taskRecord struct {
	task       domain.Task
	creatorId  int64
	assigneeId int64
}

type Store struct {
	mu    sync.RWMutex
	clock func() time.Time

	users    map[int64]domain.User
	tasks    map[int64]taskRecord
	lastUser int64
	lastTask int64
}

type Option func(*Store)

// WithClock replaces the source of creation and update times.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithFixtures loads users and tasks on creation.
//
// Ids of them are kept, and new ids follow the largest ones.
// Tasks should refer users in the fixture.
func WithFixtures(users []domain.User, tasks []domain.Task) Option {
	return func(s *Store) {
		for _, u := range users {
			s.users[u.Id] = u
			s.lastUser = max(s.lastUser, u.Id)
		}
		for _, t := range tasks {
			s.tasks[t.Id] = taskRecord{
				task:       cloneTask(t),
				creatorId:  t.Creator.Id,
				assigneeId: t.Assignee.Id,
			}
			s.lastTask = max(s.lastTask, t.Id)
		}
	}
}

// New creates an empty store.
func New(options ...Option) *Store {
	s := &Store{
		clock: time.Now,
		users: map[int64]domain.User{},
		tasks: map[int64]taskRecord{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ kdb.Database = &Store{}

func (s *Store) Users() kuser.UserInterface {
	return &users{s}
}

func (s *Store) Tasks() ktask.TaskInterface {
	return &tasks{s}
}

func (s *Store) Schema() kschema.SchemaInterface {
	return kschema.Null()
}

func (s *Store) Close() error {
	return nil
}

func cloneTask(t domain.Task) domain.Task {
	t.Tags = slices.Clone(t.Tags)
	if t.EndDate != nil {
		d := *t.EndDate
		t.EndDate = &d
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		t.UpdatedAt = &u
	}
	return t
}

// resolve builds a task with its users. Caller should hold lock.
func (s *Store) resolve(r taskRecord) domain.Task {
	t := cloneTask(r.task)
	t.Creator = s.users[r.creatorId]
	t.Assignee = s.users[r.assigneeId]
	return t
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

type users struct {
	*Store
}

func (u *users) Create(_ context.Context, spec domain.UserSpec) (domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.lastUser += 1
	user := domain.User{
		Id:        u.lastUser,
		FirstName: spec.FirstName,
		LastName:  spec.LastName,
		BirthDate: domain.DateOf(spec.BirthDate),
	}
	u.users[user.Id] = user
	return user, nil
}

func (u *users) Get(_ context.Context, id int64) (domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, ok := u.users[id]
	if !ok {
		return domain.User{}, dberrors.Missing{Table: "user", Identity: fmt.Sprint(id)}
	}
	return user, nil
}

func (u *users) List(_ context.Context, query domain.UserQuery) ([]domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	ret := []domain.User{}
	for _, id := range sortedKeys(u.users) {
		if user := u.users[id]; query.Match(user) {
			ret = append(ret, user)
		}
	}
	return ret, nil
}

func (u *users) Update(_ context.Context, id int64, spec domain.UserSpec) (domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[id]; !ok {
		return domain.User{}, dberrors.Missing{Table: "user", Identity: fmt.Sprint(id)}
	}
	user := domain.User{
		Id:        id,
		FirstName: spec.FirstName,
		LastName:  spec.LastName,
		BirthDate: domain.DateOf(spec.BirthDate),
	}
	u.users[id] = user
	return user, nil
}

func (u *users) Delete(_ context.Context, id int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[id]; !ok {
		return dberrors.Missing{Table: "user", Identity: fmt.Sprint(id)}
	}
	for _, r := range u.tasks {
		if r.creatorId == id || r.assigneeId == id {
			return fmt.Errorf("%w (user id = %d, task id = %d)", domerr.ErrUserInUse, id, r.task.Id)
		}
	}
	delete(u.users, id)
	return nil
}

type tasks struct {
	*Store
}

func (t *tasks) Create(_ context.Context, spec domain.TaskSpec) (domain.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.users[spec.CreatorId]; !ok {
		return domain.Task{}, dberrors.MissingUser(domerr.ErrMissingCreator, spec.CreatorId)
	}
	if _, ok := t.users[spec.AssigneeId]; !ok {
		return domain.Task{}, dberrors.MissingUser(domerr.ErrMissingAssignee, spec.AssigneeId)
	}

	t.lastTask += 1
	var end *time.Time
	if !spec.EndDate.IsZero() {
		d := domain.DateOf(spec.EndDate)
		end = &d
	}
	r := taskRecord{
		task: domain.Task{
			Id:          t.lastTask,
			Title:       spec.Title,
			Description: spec.Description,
			EndDate:     end,
			Tags:        slices.Clone(spec.Tags),
			Priority:    spec.Priority,
			Status:      spec.Status,
			CreatedAt:   t.clock(),
		},
		creatorId:  spec.CreatorId,
		assigneeId: spec.AssigneeId,
	}
	if r.task.Tags == nil {
		r.task.Tags = []string{}
	}
	t.tasks[r.task.Id] = r
	return t.resolve(r), nil
}

func (t *tasks) Get(_ context.Context, id int64) (domain.Task, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.tasks[id]
	if !ok {
		return domain.Task{}, dberrors.Missing{Table: "task", Identity: fmt.Sprint(id)}
	}
	return t.resolve(r), nil
}

func (t *tasks) Find(_ context.Context, query domain.TaskQuery) ([]domain.Task, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ret := []domain.Task{}
	for _, id := range sortedKeys(t.tasks) {
		if task := t.resolve(t.tasks[id]); query.Match(task) {
			ret = append(ret, task)
		}
	}
	return ret, nil
}

func (t *tasks) Update(_ context.Context, id int64, change domain.TaskChange) (domain.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.tasks[id]
	if !ok {
		return domain.Task{}, dberrors.Missing{Table: "task", Identity: fmt.Sprint(id)}
	}
	if change.AssigneeId != nil {
		if _, ok := t.users[*change.AssigneeId]; !ok {
			return domain.Task{}, dberrors.MissingUser(domerr.ErrMissingAssignee, *change.AssigneeId)
		}
		r.assigneeId = *change.AssigneeId
	}

	r.task = change.Apply(r.task)
	now := t.clock()
	r.task.UpdatedAt = &now
	t.tasks[id] = r
	return t.resolve(r), nil
}

func (t *tasks) SetStatus(_ context.Context, id int64, status domain.TaskStatus) (domain.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.tasks[id]
	if !ok {
		return domain.Task{}, dberrors.Missing{Table: "task", Identity: fmt.Sprint(id)}
	}
	r.task.Status = status
	now := t.clock()
	r.task.UpdatedAt = &now
	t.tasks[id] = r
	return t.resolve(r), nil
}

func (t *tasks) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.tasks[id]; !ok {
		return dberrors.Missing{Table: "task", Identity: fmt.Sprint(id)}
	}
	delete(t.tasks, id)
	return nil
}
