package kanban

import (
	"slices"
	"time"
)

// ColumnTasks picks tasks in the column of status.
//
// Tasks are ordered by end date, earlier first. Tasks without end date come last.
// The order of tasks with the same end date is kept.
func ColumnTasks(tasks []Task, status Status) []Task {
	col := []Task{}
	for _, t := range tasks {
		if t.Status == status {
			col = append(col, t.clone())
		}
	}
	slices.SortStableFunc(col, func(a, b Task) int {
		ea, oka := parseEndDate(a.EndDate)
		eb, okb := parseEndDate(b.EndDate)
		switch {
		case !oka && !okb:
			return 0
		case !oka:
			return 1
		case !okb:
			return -1
		default:
			return ea.Compare(eb)
		}
	})
	return col
}

// Column is a status with its tasks.
type Column struct {
	Status Status
	Tasks  []Task
}

func (c Column) Title() string {
	return c.Status.Title()
}

// Columns lays tasks out in the columns of Statuses.
func Columns(tasks []Task) []Column {
	cols := make([]Column, 0, len(Statuses))
	for _, s := range Statuses {
		cols = append(cols, Column{Status: s, Tasks: ColumnTasks(tasks, s)})
	}
	return cols
}

type Stats struct {
	Total      int
	Completed  int
	InProgress int

	// tasks past their end dates and not done.
	Overdue int
}

// Summarize counts tasks on the board as of today.
func Summarize(tasks []Task, today time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case Done:
			s.Completed += 1
		case InProgress:
			s.InProgress += 1
		}
		if t.Status != Done && Overdue(t.EndDate, today) {
			s.Overdue += 1
		}
	}
	return s
}
