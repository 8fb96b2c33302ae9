package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/taskboard/taskboard/pkg/conn/db/postgres/pool"
	kschema "github.com/taskboard/taskboard/pkg/domain/schema/db"
	kpgschema "github.com/taskboard/taskboard/pkg/domain/schema/db/postgres"
	ktask "github.com/taskboard/taskboard/pkg/domain/task/db"
	kpgtask "github.com/taskboard/taskboard/pkg/domain/task/db/postgres"
	kdb "github.com/taskboard/taskboard/pkg/domain/taskboard/db"
	kuser "github.com/taskboard/taskboard/pkg/domain/user/db"
	kpguser "github.com/taskboard/taskboard/pkg/domain/user/db/postgres"
	xe "github.com/taskboard/taskboard/pkg/errors"
)

type boardPostgres struct {
	pool   kpool.Pool
	users  kuser.UserInterface
	tasks  ktask.TaskInterface
	schema kschema.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

// New connects to the database at url.
func New(ctx context.Context, url string, options ...Option) (kdb.Database, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	return FromPool(kpool.Wrap(pool), c), nil
}

// FromPool builds a database on a connected pool.
func FromPool(p kpool.Pool, c Config) kdb.Database {
	schema := kschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &boardPostgres{
		pool:   p,
		users:  kpguser.New(p),
		tasks:  kpgtask.New(p),
		schema: schema,
	}
}

func (b *boardPostgres) Users() kuser.UserInterface {
	return b.users
}

func (b *boardPostgres) Tasks() ktask.TaskInterface {
	return b.tasks
}

func (b *boardPostgres) Schema() kschema.SchemaInterface {
	return b.schema
}

func (b *boardPostgres) Close() error {
	b.pool.Close()
	return nil
}
