package kanban

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Source is where the board reads tasks from and writes status changes to.
type Source interface {
	// Tasks returns all tasks.
	Tasks(ctx context.Context) ([]Task, error)

	// UpdateStatus moves the task with id to status.
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// ErrRefresh wraps errors of refetching after a drop.
var ErrRefresh = errors.New("failed to refresh the board")

// Board holds tasks shown on the board.
//
// Drops update the board at once, then are sent to the Source.
// The board is refetched from the Source after each drop,
// so a failed drop is rolled back by the refetch.
type Board struct {
	src Source

	mu    sync.RWMutex
	tasks []Task

	// serializes sending drops and refetching.
	syncMu sync.Mutex
}

// New creates an empty board on src. Call Refresh to load tasks.
func New(src Source) *Board {
	return &Board{src: src, tasks: []Task{}}
}

// Refresh replaces tasks on the board with ones from the Source.
//
// On error, the board is kept as it is.
func (b *Board) Refresh(ctx context.Context) error {
	tasks, err := b.src.Tasks(ctx)
	if err != nil {
		return err
	}
	cloned := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		cloned = append(cloned, t.clone())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = cloned
	return nil
}

// Snapshot returns a copy of tasks on the board.
func (b *Board) Snapshot() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ret := make([]Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		ret = append(ret, t.clone())
	}
	return ret
}

// Columns lays the snapshot out in columns.
func (b *Board) Columns() []Column {
	return Columns(b.Snapshot())
}

// Sync sends a drop to the Source and refetches the board.
type Sync func(ctx context.Context) error

// Move applies dropping the task activeId onto the droppable overId to the board.
//
// It changes nothing and returns false when overId is empty or names no column,
// or when the task is not on the board or in the column already.
//
// Otherwise, the task is moved on the board at once, and the returned Sync
// completes the drop.
func (b *Board) Move(activeId string, overId string) (Sync, bool) {
	if overId == "" {
		return nil, false
	}
	target, ok := TargetStatus(overId)
	if !ok {
		return nil, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	nth := slices.IndexFunc(b.tasks, func(t Task) bool { return t.Id == activeId })
	if nth < 0 || b.tasks[nth].Status == target {
		return nil, false
	}
	b.tasks[nth].Status = target

	return func(ctx context.Context) error {
		b.syncMu.Lock()
		defer b.syncMu.Unlock()

		uerr := b.src.UpdateStatus(ctx, activeId, target)
		if rerr := b.Refresh(ctx); rerr != nil {
			return errors.Join(uerr, fmt.Errorf("%w: %w", ErrRefresh, rerr))
		}
		return uerr
	}, true
}

// Drop moves the task activeId onto the droppable overId, and waits the Source.
//
// moved is false when the drop changes nothing (see Move).
// err is the error of sending the status or refetching. When sending fails,
// the board has been rolled back by the refetch.
func (b *Board) Drop(ctx context.Context, activeId string, overId string) (moved bool, err error) {
	send, ok := b.Move(activeId, overId)
	if !ok {
		return false, nil
	}
	return true, send(ctx)
}
