package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing means requested entities are not found.
	ErrMissing = errors.New("missing")

	// ErrMissingCreator means the creator of a new task is not a user.
	ErrMissingCreator = fmt.Errorf("creator is %w", ErrMissing)

	// ErrMissingAssignee means the assignee of a task is not a user.
	ErrMissingAssignee = fmt.Errorf("assignee is %w", ErrMissing)

	// ErrConflict means the operation breaks relations between entities.
	ErrConflict = errors.New("conflict")

	// ErrUserInUse means the user is a creator or an assignee of some tasks.
	ErrUserInUse = fmt.Errorf("%w: user is referred by tasks", ErrConflict)
)
