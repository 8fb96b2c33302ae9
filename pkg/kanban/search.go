package kanban

import (
	"strings"
	"sync"
	"time"
)

// SearchDelay is the quiet time before a typed search term is applied.
const SearchDelay = 300 * time.Millisecond

// SearchByUser picks tasks whose assignee or creator has a name containing term,
// ignoring case.
//
// Blank term finds nothing.
func SearchByUser(tasks []Task, users []User, term string) []Task {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []Task{}
	}

	names := map[string]string{}
	for _, u := range users {
		names[u.Id] = strings.ToLower(u.Name)
	}
	hit := func(id string) bool {
		name, ok := names[id]
		return ok && strings.Contains(name, term)
	}

	found := []Task{}
	for _, t := range tasks {
		if hit(t.Assignee) || hit(t.Creator) {
			found = append(found, t.clone())
		}
	}
	return found
}

// Debouncer calls a function with the latest value after values stop coming for a while.
type Debouncer[T any] struct {
	delay time.Duration
	f     func(T)

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer calling f after delay of quiet time.
func NewDebouncer[T any](delay time.Duration, f func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, f: f}
}

// Push replaces the pending value with v and restarts the wait.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.f(v) })
}

// Stop drops the pending value, if any.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
