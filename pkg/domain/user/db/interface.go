package db

import (
	"context"

	"github.com/taskboard/taskboard/pkg/domain"
)

type UserInterface interface {
	// Create registers a new user.
	//
	// The spec should be validated already.
	//
	// # Returns
	//
	// - domain.User: created user, with a new id.
	//
	// - error
	Create(ctx context.Context, spec domain.UserSpec) (domain.User, error)

	// Get a user by id.
	//
	// # Returns
	//
	// - domain.User
	//
	// - error: errors.ErrMissing when there is no such user.
	Get(ctx context.Context, id int64) (domain.User, error)

	// List users matching the query, ordered by id.
	List(ctx context.Context, query domain.UserQuery) ([]domain.User, error)

	// Update replaces attributes of the user.
	//
	// # Returns
	//
	// - domain.User: updated user.
	//
	// - error: errors.ErrMissing when there is no such user.
	Update(ctx context.Context, id int64, spec domain.UserSpec) (domain.User, error)

	// Delete removes the user.
	//
	// # Returns
	//
	// - error: errors.ErrMissing when there is no such user,
	// or errors.ErrUserInUse when some tasks refer the user.
	Delete(ctx context.Context, id int64) error
}
