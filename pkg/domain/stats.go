package domain

import "time"

// TaskStats summarizes tasks for the dashboard.
type TaskStats struct {
	Total      int
	Completed  int
	InProgress int
	Overdue    int
}

// Summarize counts tasks as of today.
func Summarize(tasks []Task, today time.Time) TaskStats {
	s := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case Completed:
			s.Completed += 1
		case InProgress:
			s.InProgress += 1
		}
		if t.Overdue(today) {
			s.Overdue += 1
		}
	}
	return s
}
