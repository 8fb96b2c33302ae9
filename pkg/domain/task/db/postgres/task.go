package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/taskboard/taskboard/pkg/conn/db/postgres/pool"
	"github.com/taskboard/taskboard/pkg/domain"
	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
	"github.com/taskboard/taskboard/pkg/domain/errors/dberrors"
	ktask "github.com/taskboard/taskboard/pkg/domain/task/db"
)

type pgTask struct {
	pool kpool.Pool
}

var _ ktask.TaskInterface = &pgTask{}

func New(pool kpool.Pool) ktask.TaskInterface {
	return &pgTask{pool: pool}
}

const selectTask = `
select
	t."task_id", t."title", t."description", t."end_date",
	c."user_id", c."first_name", c."last_name", c."birth_date",
	a."user_id", a."first_name", a."last_name", a."birth_date",
	t."tags", t."priority"::text, t."status"::text,
	t."created_at", t."updated_at"
from "task" as t
	inner join "user" as c on c."user_id" = t."creator_id"
	inner join "user" as a on a."user_id" = t."assignee_id"
`

func scanTask(row pgx.Row) (domain.Task, error) {
	t := domain.Task{}
	var end pgtype.Date
	var updated pgtype.Timestamptz
	var priority, status string
	if err := row.Scan(
		&t.Id, &t.Title, &t.Description, &end,
		&t.Creator.Id, &t.Creator.FirstName, &t.Creator.LastName, &t.Creator.BirthDate,
		&t.Assignee.Id, &t.Assignee.FirstName, &t.Assignee.LastName, &t.Assignee.BirthDate,
		&t.Tags, &priority, &status,
		&t.CreatedAt, &updated,
	); err != nil {
		return domain.Task{}, err
	}

	if end.Status == pgtype.Present {
		d := domain.DateOf(end.Time)
		t.EndDate = &d
	}
	if updated.Status == pgtype.Present {
		u := updated.Time
		t.UpdatedAt = &u
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Creator.BirthDate = domain.DateOf(t.Creator.BirthDate)
	t.Assignee.BirthDate = domain.DateOf(t.Assignee.BirthDate)
	t.Priority = domain.Priority(priority)
	t.Status = domain.TaskStatus(status)
	return t, nil
}

func missing(id int64) error {
	return dberrors.Missing{Table: "task", Identity: fmt.Sprint(id)}
}

func endDate(t *domain.Task) pgtype.Date {
	if t.EndDate == nil {
		return pgtype.Date{Status: pgtype.Null}
	}
	return pgtype.Date{Time: domain.DateOf(*t.EndDate), Status: pgtype.Present}
}

// asMissingUser translates foreign key violations into missing users.
func asMissingUser(err error, creatorId, assigneeId int64) error {
	pgerr := new(pgconn.PgError)
	if !errors.As(err, &pgerr) || pgerr.Code != pgerrcode.ForeignKeyViolation {
		return err
	}
	if strings.Contains(pgerr.ConstraintName, "creator") {
		return dberrors.MissingUser(domerr.ErrMissingCreator, creatorId)
	}
	return dberrors.MissingUser(domerr.ErrMissingAssignee, assigneeId)
}

func get(ctx context.Context, q kpool.Queryer, id int64, lock bool) (domain.Task, error) {
	query := selectTask + `where t."task_id" = $1`
	if lock {
		query += ` for update of t`
	}
	t, err := scanTask(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, missing(id)
	}
	return t, err
}

func (m *pgTask) Create(ctx context.Context, spec domain.TaskSpec) (domain.Task, error) {
	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) (domain.Task, error) {
		var end pgtype.Date
		if spec.EndDate.IsZero() {
			end = pgtype.Date{Status: pgtype.Null}
		} else {
			end = pgtype.Date{Time: domain.DateOf(spec.EndDate), Status: pgtype.Present}
		}
		tags := spec.Tags
		if tags == nil {
			tags = []string{}
		}

		var id int64
		if err := tx.QueryRow(
			ctx,
			`insert into "task"
				("title", "description", "end_date", "creator_id", "assignee_id", "tags", "priority", "status")
			values ($1, $2, $3, $4, $5, $6, $7::text::"task_priority", $8::text::"task_status")
			returning "task_id"`,
			spec.Title, spec.Description, end, spec.CreatorId, spec.AssigneeId,
			tags, string(spec.Priority), string(spec.Status),
		).Scan(&id); err != nil {
			return domain.Task{}, asMissingUser(err, spec.CreatorId, spec.AssigneeId)
		}
		return get(ctx, tx, id, false)
	})
}

func (m *pgTask) Get(ctx context.Context, id int64) (domain.Task, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	defer conn.Release()
	return get(ctx, conn, id, false)
}

func (m *pgTask) Find(ctx context.Context, query domain.TaskQuery) ([]domain.Task, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var assignee pgtype.Int8
	if query.AssigneeId != nil {
		assignee = pgtype.Int8{Int: *query.AssigneeId, Status: pgtype.Present}
	} else {
		assignee = pgtype.Int8{Status: pgtype.Null}
	}

	rows, err := conn.Query(
		ctx,
		selectTask+`
		where ($1::bigint is null or t."assignee_id" = $1::bigint)
			and (
				$2::text = ''
				or ($3::boolean and $2::text = any(t."tags"))
				or (not $3::boolean and exists (
					select 1 from unnest(t."tags") as "tag"
					where strpos(lower("tag"), lower($2::text)) > 0
				))
			)
		order by t."task_id"`,
		assignee, query.Tag, query.ExactTag,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (m *pgTask) Update(ctx context.Context, id int64, change domain.TaskChange) (domain.Task, error) {
	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) (domain.Task, error) {
		current, err := get(ctx, tx, id, true)
		if err != nil {
			return domain.Task{}, err
		}
		next := change.Apply(current)
		assigneeId := current.Assignee.Id
		if change.AssigneeId != nil {
			assigneeId = *change.AssigneeId
		}

		if _, err := tx.Exec(
			ctx,
			`update "task" set
				"title" = $2, "description" = $3, "end_date" = $4, "assignee_id" = $5,
				"tags" = $6, "priority" = $7::text::"task_priority", "status" = $8::text::"task_status",
				"updated_at" = now()
			where "task_id" = $1`,
			id, next.Title, next.Description, endDate(&next), assigneeId,
			next.Tags, string(next.Priority), string(next.Status),
		); err != nil {
			return domain.Task{}, asMissingUser(err, current.Creator.Id, assigneeId)
		}
		return get(ctx, tx, id, false)
	})
}

func (m *pgTask) SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error) {
	return kpool.InTx(ctx, m.pool, func(tx kpool.Tx) (domain.Task, error) {
		tag, err := tx.Exec(
			ctx,
			`update "task" set "status" = $2::text::"task_status", "updated_at" = now()
			where "task_id" = $1`,
			id, string(status),
		)
		if err != nil {
			return domain.Task{}, err
		}
		if tag.RowsAffected() == 0 {
			return domain.Task{}, missing(id)
		}
		return get(ctx, tx, id, false)
	})
}

func (m *pgTask) Delete(ctx context.Context, id int64) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `delete from "task" where "task_id" = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return missing(id)
	}
	return nil
}
