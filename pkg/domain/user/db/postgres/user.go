package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kpool "github.com/taskboard/taskboard/pkg/conn/db/postgres/pool"
	"github.com/taskboard/taskboard/pkg/domain"
	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
	"github.com/taskboard/taskboard/pkg/domain/errors/dberrors"
	kuser "github.com/taskboard/taskboard/pkg/domain/user/db"
)

type pgUser struct {
	pool kpool.Pool
}

var _ kuser.UserInterface = &pgUser{}

func New(pool kpool.Pool) kuser.UserInterface {
	return &pgUser{pool: pool}
}

const userColumns = `"user_id", "first_name", "last_name", "birth_date"`

func scanUser(row pgx.Row) (domain.User, error) {
	u := domain.User{}
	if err := row.Scan(&u.Id, &u.FirstName, &u.LastName, &u.BirthDate); err != nil {
		return domain.User{}, err
	}
	u.BirthDate = domain.DateOf(u.BirthDate)
	return u, nil
}

func missing(id int64) error {
	return dberrors.Missing{Table: "user", Identity: fmt.Sprint(id)}
}

func (m *pgUser) Create(ctx context.Context, spec domain.UserSpec) (domain.User, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	return scanUser(conn.QueryRow(
		ctx,
		`insert into "user" ("first_name", "last_name", "birth_date") values ($1, $2, $3)
		returning `+userColumns,
		spec.FirstName, spec.LastName, domain.DateOf(spec.BirthDate),
	))
}

func (m *pgUser) Get(ctx context.Context, id int64) (domain.User, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	u, err := scanUser(conn.QueryRow(
		ctx, `select `+userColumns+` from "user" where "user_id" = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, missing(id)
	}
	return u, err
}

func (m *pgUser) List(ctx context.Context, query domain.UserQuery) ([]domain.User, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select `+userColumns+` from "user"
		where $1::text = ''
			or strpos(lower("first_name"), lower($1::text)) > 0
			or strpos(lower("last_name"), lower($1::text)) > 0
		order by "user_id"`,
		query.Name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (m *pgUser) Update(ctx context.Context, id int64, spec domain.UserSpec) (domain.User, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	u, err := scanUser(conn.QueryRow(
		ctx,
		`update "user" set "first_name" = $2, "last_name" = $3, "birth_date" = $4
		where "user_id" = $1
		returning `+userColumns,
		id, spec.FirstName, spec.LastName, domain.DateOf(spec.BirthDate),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, missing(id)
	}
	return u, err
}

func (m *pgUser) Delete(ctx context.Context, id int64) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `delete from "user" where "user_id" = $1`, id)
	if err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%w (user id = %d)", domerr.ErrUserInUse, id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return missing(id)
	}
	return nil
}
