// Package sqlite stores taskboard in a single file, for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard/pkg/domain"
	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
	"github.com/taskboard/taskboard/pkg/domain/errors/dberrors"
	kschema "github.com/taskboard/taskboard/pkg/domain/schema/db"
	ktask "github.com/taskboard/taskboard/pkg/domain/task/db"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	kuser "github.com/taskboard/taskboard/pkg/domain/user/db"
	xe "github.com/taskboard/taskboard/pkg/errors"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

var ddl = []string{
	`create table if not exists "user" (
		"user_id" integer primary key autoincrement,
		"first_name" text not null,
		"last_name" text not null,
		"birth_date" text not null
	)`,
	`create table if not exists "task" (
		"task_id" integer primary key autoincrement,
		"title" text not null,
		"description" text not null,
		"end_date" text,
		"creator_id" integer not null references "user" ("user_id"),
		"assignee_id" integer not null references "user" ("user_id"),
		"priority" text not null,
		"status" text not null,
		"created_at" text not null,
		"updated_at" text
	)`,
	`create table if not exists "task_tag" (
		"task_id" integer not null references "task" ("task_id") on delete cascade,
		"position" integer not null,
		"tag" text not null,
		primary key ("task_id", "position")
	)`,
	fmt.Sprintf(`pragma user_version = %d`, schemaVersion),
}

// querier is what *sql.DB and *sql.Tx have in common.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db    *sql.DB
	clock func() time.Time
}

var _ kdb.Database = &Store{}

type Option func(*Store)

// WithClock replaces the source of creation and update times.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// Open opens (or creates) the database file at path, and brings its tables up.
//
// path ":memory:" makes a volatile database.
func Open(ctx context.Context, path string, options ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, xe.Wrap(err)
	}
	// sqlite serializes writers anyway, and ":memory:" lives per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, clock: time.Now}
	for _, opt := range options {
		opt(s)
	}

	if err := s.Schema().Upgrade(ctx); err != nil {
		db.Close()
		return nil, xe.Wrap(err)
	}
	return s, nil
}

func (s *Store) Users() kuser.UserInterface {
	return &users{s}
}

func (s *Store) Tasks() ktask.TaskInterface {
	return &tasks{s}
}

func (s *Store) Schema() kschema.SchemaInterface {
	return &schema{s.db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) now() string {
	return s.clock().UTC().Format(time.RFC3339Nano)
}

func inTx[T any](ctx context.Context, db *sql.DB, f func(*sql.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback()

	ret, err := f(tx)
	if err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return ret, nil
}

type schema struct {
	db *sql.DB
}

func (s *schema) Upgrade(ctx context.Context) error {
	_, err := inTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		for _, q := range ddl {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func (s *schema) Version(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, `pragma user_version`).Scan(&v); err != nil {
		return -1, err
	}
	return v, nil
}

func (s *schema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

func formatDate(t time.Time) string {
	return domain.DateOf(t).Format(time.DateOnly)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func userMissing(id int64) error {
	return dberrors.Missing{Table: "user", Identity: fmt.Sprint(id)}
}

func taskMissing(id int64) error {
	return dberrors.Missing{Table: "task", Identity: fmt.Sprint(id)}
}

type users struct {
	*Store
}

const userColumns = `"user_id", "first_name", "last_name", "birth_date"`

type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable) (domain.User, error) {
	u := domain.User{}
	var birth string
	if err := row.Scan(&u.Id, &u.FirstName, &u.LastName, &birth); err != nil {
		return domain.User{}, err
	}
	b, err := parseDate(birth)
	if err != nil {
		return domain.User{}, err
	}
	u.BirthDate = b
	return u, nil
}

func getUser(ctx context.Context, q querier, id int64) (domain.User, error) {
	u, err := scanUser(q.QueryRowContext(
		ctx, `select `+userColumns+` from "user" where "user_id" = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, userMissing(id)
	}
	return u, err
}

func (u *users) Create(ctx context.Context, spec domain.UserSpec) (domain.User, error) {
	res, err := u.db.ExecContext(
		ctx,
		`insert into "user" ("first_name", "last_name", "birth_date") values (?, ?, ?)`,
		spec.FirstName, spec.LastName, formatDate(spec.BirthDate),
	)
	if err != nil {
		return domain.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	return getUser(ctx, u.db, id)
}

func (u *users) Get(ctx context.Context, id int64) (domain.User, error) {
	return getUser(ctx, u.db, id)
}

func (u *users) List(ctx context.Context, query domain.UserQuery) ([]domain.User, error) {
	rows, err := u.db.QueryContext(ctx, `select `+userColumns+` from "user" order by "user_id"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		// sqlite's lower() is ASCII only. Match names in Go.
		if query.Match(user) {
			ret = append(ret, user)
		}
	}
	return ret, rows.Err()
}

func (u *users) Update(ctx context.Context, id int64, spec domain.UserSpec) (domain.User, error) {
	return inTx(ctx, u.db, func(tx *sql.Tx) (domain.User, error) {
		res, err := tx.ExecContext(
			ctx,
			`update "user" set "first_name" = ?, "last_name" = ?, "birth_date" = ? where "user_id" = ?`,
			spec.FirstName, spec.LastName, formatDate(spec.BirthDate), id,
		)
		if err != nil {
			return domain.User{}, err
		}
		if n, err := res.RowsAffected(); err != nil {
			return domain.User{}, err
		} else if n == 0 {
			return domain.User{}, userMissing(id)
		}
		return getUser(ctx, tx, id)
	})
}

func (u *users) Delete(ctx context.Context, id int64) error {
	_, err := inTx(ctx, u.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := getUser(ctx, tx, id); err != nil {
			return struct{}{}, err
		}

		var taskId int64
		err := tx.QueryRowContext(
			ctx,
			`select "task_id" from "task" where "creator_id" = ?1 or "assignee_id" = ?1 limit 1`,
			id,
		).Scan(&taskId)
		switch {
		case err == nil:
			return struct{}{}, fmt.Errorf("%w (user id = %d, task id = %d)", domerr.ErrUserInUse, id, taskId)
		case !errors.Is(err, sql.ErrNoRows):
			return struct{}{}, err
		}

		_, err = tx.ExecContext(ctx, `delete from "user" where "user_id" = ?`, id)
		return struct{}{}, err
	})
	return err
}

type tasks struct {
	*Store
}

const selectTask = `
select
	t."task_id", t."title", t."description", t."end_date",
	c."user_id", c."first_name", c."last_name", c."birth_date",
	a."user_id", a."first_name", a."last_name", a."birth_date",
	t."priority", t."status", t."created_at", t."updated_at"
from "task" as t
	inner join "user" as c on c."user_id" = t."creator_id"
	inner join "user" as a on a."user_id" = t."assignee_id"
`

func scanTask(row scannable) (domain.Task, error) {
	t := domain.Task{Tags: []string{}}
	var end, updated sql.NullString
	var created, creatorBirth, assigneeBirth string
	if err := row.Scan(
		&t.Id, &t.Title, &t.Description, &end,
		&t.Creator.Id, &t.Creator.FirstName, &t.Creator.LastName, &creatorBirth,
		&t.Assignee.Id, &t.Assignee.FirstName, &t.Assignee.LastName, &assigneeBirth,
		&t.Priority, &t.Status, &created, &updated,
	); err != nil {
		return domain.Task{}, err
	}

	var err error
	if t.Creator.BirthDate, err = parseDate(creatorBirth); err != nil {
		return domain.Task{}, err
	}
	if t.Assignee.BirthDate, err = parseDate(assigneeBirth); err != nil {
		return domain.Task{}, err
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return domain.Task{}, err
	}
	if end.Valid {
		d, err := parseDate(end.String)
		if err != nil {
			return domain.Task{}, err
		}
		t.EndDate = &d
	}
	if updated.Valid {
		u, err := time.Parse(time.RFC3339Nano, updated.String)
		if err != nil {
			return domain.Task{}, err
		}
		t.UpdatedAt = &u
	}
	return t, nil
}

// queryTasks finds tasks with tags, in id order.
func queryTasks(ctx context.Context, q querier, where string, args ...any) ([]domain.Task, error) {
	rows, err := q.QueryContext(ctx, selectTask+where+` order by t."task_id"`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []domain.Task{}
	index := map[int64]int{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		index[t.Id] = len(ret)
		ret = append(ret, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return ret, nil
	}

	tagRows, err := q.QueryContext(
		ctx, `select "task_id", "tag" from "task_tag" order by "task_id", "position"`,
	)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var id int64
		var tag string
		if err := tagRows.Scan(&id, &tag); err != nil {
			return nil, err
		}
		if i, ok := index[id]; ok {
			ret[i].Tags = append(ret[i].Tags, tag)
		}
	}
	return ret, tagRows.Err()
}

func getTask(ctx context.Context, q querier, id int64) (domain.Task, error) {
	ts, err := queryTasks(ctx, q, `where t."task_id" = ?`, id)
	if err != nil {
		return domain.Task{}, err
	}
	if len(ts) == 0 {
		return domain.Task{}, taskMissing(id)
	}
	return ts[0], nil
}

func putTags(ctx context.Context, tx *sql.Tx, id int64, tags []string) error {
	if _, err := tx.ExecContext(ctx, `delete from "task_tag" where "task_id" = ?`, id); err != nil {
		return err
	}
	for n, tag := range tags {
		if _, err := tx.ExecContext(
			ctx,
			`insert into "task_tag" ("task_id", "position", "tag") values (?, ?, ?)`,
			id, n, tag,
		); err != nil {
			return err
		}
	}
	return nil
}

func nullableDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(*t), Valid: true}
}

func requireUser(ctx context.Context, tx *sql.Tx, sentinel error, id int64) error {
	_, err := getUser(ctx, tx, id)
	if errors.Is(err, domerr.ErrMissing) {
		return dberrors.MissingUser(sentinel, id)
	}
	return err
}

func (t *tasks) Create(ctx context.Context, spec domain.TaskSpec) (domain.Task, error) {
	return inTx(ctx, t.db, func(tx *sql.Tx) (domain.Task, error) {
		if err := requireUser(ctx, tx, domerr.ErrMissingCreator, spec.CreatorId); err != nil {
			return domain.Task{}, err
		}
		if err := requireUser(ctx, tx, domerr.ErrMissingAssignee, spec.AssigneeId); err != nil {
			return domain.Task{}, err
		}

		var end *time.Time
		if !spec.EndDate.IsZero() {
			end = &spec.EndDate
		}
		res, err := tx.ExecContext(
			ctx,
			`insert into "task"
				("title", "description", "end_date", "creator_id", "assignee_id", "priority", "status", "created_at")
			values (?, ?, ?, ?, ?, ?, ?, ?)`,
			spec.Title, spec.Description, nullableDate(end), spec.CreatorId, spec.AssigneeId,
			string(spec.Priority), string(spec.Status), t.now(),
		)
		if err != nil {
			return domain.Task{}, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return domain.Task{}, err
		}
		if err := putTags(ctx, tx, id, spec.Tags); err != nil {
			return domain.Task{}, err
		}
		return getTask(ctx, tx, id)
	})
}

func (t *tasks) Get(ctx context.Context, id int64) (domain.Task, error) {
	return getTask(ctx, t.db, id)
}

func (t *tasks) Find(ctx context.Context, query domain.TaskQuery) ([]domain.Task, error) {
	where, args := "", []any{}
	if query.AssigneeId != nil {
		where, args = `where t."assignee_id" = ?`, append(args, *query.AssigneeId)
	}
	found, err := queryTasks(ctx, t.db, where, args...)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query.Tag) == "" {
		return found, nil
	}
	ret := []domain.Task{}
	for _, task := range found {
		if query.Match(task) {
			ret = append(ret, task)
		}
	}
	return ret, nil
}

func (t *tasks) Update(ctx context.Context, id int64, change domain.TaskChange) (domain.Task, error) {
	return inTx(ctx, t.db, func(tx *sql.Tx) (domain.Task, error) {
		current, err := getTask(ctx, tx, id)
		if err != nil {
			return domain.Task{}, err
		}
		assigneeId := current.Assignee.Id
		if change.AssigneeId != nil {
			if err := requireUser(ctx, tx, domerr.ErrMissingAssignee, *change.AssigneeId); err != nil {
				return domain.Task{}, err
			}
			assigneeId = *change.AssigneeId
		}

		next := change.Apply(current)
		if _, err := tx.ExecContext(
			ctx,
			`update "task" set
				"title" = ?, "description" = ?, "end_date" = ?, "assignee_id" = ?,
				"priority" = ?, "status" = ?, "updated_at" = ?
			where "task_id" = ?`,
			next.Title, next.Description, nullableDate(next.EndDate), assigneeId,
			string(next.Priority), string(next.Status), t.now(), id,
		); err != nil {
			return domain.Task{}, err
		}
		if err := putTags(ctx, tx, id, next.Tags); err != nil {
			return domain.Task{}, err
		}
		return getTask(ctx, tx, id)
	})
}

func (t *tasks) SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error) {
	return inTx(ctx, t.db, func(tx *sql.Tx) (domain.Task, error) {
		res, err := tx.ExecContext(
			ctx,
			`update "task" set "status" = ?, "updated_at" = ? where "task_id" = ?`,
			string(status), t.now(), id,
		)
		if err != nil {
			return domain.Task{}, err
		}
		if n, err := res.RowsAffected(); err != nil {
			return domain.Task{}, err
		} else if n == 0 {
			return domain.Task{}, taskMissing(id)
		}
		return getTask(ctx, tx, id)
	})
}

func (t *tasks) Delete(ctx context.Context, id int64) error {
	_, err := inTx(ctx, t.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, `delete from "task_tag" where "task_id" = ?`, id); err != nil {
			return struct{}{}, err
		}
		res, err := tx.ExecContext(ctx, `delete from "task" where "task_id" = ?`, id)
		if err != nil {
			return struct{}{}, err
		}
		if n, err := res.RowsAffected(); err != nil {
			return struct{}{}, err
		} else if n == 0 {
			return struct{}{}, taskMissing(id)
		}
		return struct{}{}, nil
	})
	return err
}
