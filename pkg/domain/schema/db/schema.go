package db

import (
	"context"
	"errors"
)

// SchemaInterface manages versions of the database schema.
type SchemaInterface interface {
	// Upgrade applies all schema versions newer than the current one.
	Upgrade(ctx context.Context) error

	// Version returns the version of the schema in the database.
	//
	// It is 0 for an empty database.
	Version(ctx context.Context) (int, error)

	// Context returns a context canceled when the schema in the database
	// gets older than the schema repository.
	//
	// It is canceled immediately when the schema is outdated already.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}

// ErrNoRepository is returned by Upgrade of a schema without repository.
var ErrNoRepository = errors.New("no schema repository available")

// Null is a schema which is always up to date and cannot be upgraded.
//
// It serves databases without versioned schema.
func Null() SchemaInterface {
	return nullSchema{}
}

type nullSchema struct{}

func (nullSchema) Upgrade(context.Context) error {
	return ErrNoRepository
}

func (nullSchema) Version(context.Context) (int, error) {
	return 0, nil
}

func (nullSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
