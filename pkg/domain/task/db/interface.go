package db

import (
	"context"

	"github.com/taskboard/taskboard/pkg/domain"
)

type TaskInterface interface {
	// Create registers a new task. Its creation time is set to now.
	//
	// The spec should be validated already.
	//
	// # Returns
	//
	// - domain.Task: created task, with a new id and its users resolved.
	//
	// - error: errors.ErrMissingCreator or errors.ErrMissingAssignee
	// when referred users are not found.
	Create(ctx context.Context, spec domain.TaskSpec) (domain.Task, error)

	// Get a task by id.
	//
	// # Returns
	//
	// - error: errors.ErrMissing when there is no such task.
	Get(ctx context.Context, id int64) (domain.Task, error)

	// Find tasks matching the query, ordered by id.
	Find(ctx context.Context, query domain.TaskQuery) ([]domain.Task, error)

	// Update changes the task partially, and sets its update time to now.
	//
	// # Returns
	//
	// - domain.Task: updated task.
	//
	// - error: errors.ErrMissing when there is no such task,
	// or errors.ErrMissingAssignee when the new assignee is not found.
	Update(ctx context.Context, id int64, change domain.TaskChange) (domain.Task, error)

	// SetStatus changes status of the task, and sets its update time to now.
	//
	// # Returns
	//
	// - domain.Task: updated task.
	//
	// - error: errors.ErrMissing when there is no such task.
	SetStatus(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error)

	// Delete removes the task.
	//
	// # Returns
	//
	// - error: errors.ErrMissing when there is no such task.
	Delete(ctx context.Context, id int64) error
}
