// Package kanban is the board side of taskboard: columns of tasks by status,
// drag and drop between columns with optimistic updates, and the mapping
// between the board's vocabulary and the API's.
package kanban

import (
	"slices"
	"time"
)

// Status is a column of the board.
type Status string

const (
	Todo       Status = "todo"
	InProgress Status = "in-progress"
	Review     Status = "review"
	Done       Status = "done"
)

// Statuses are columns in display order.
var Statuses = []Status{Todo, InProgress, Review, Done}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Title is the heading of the column.
//
// Unknown statuses are titled with themselves.
func (s Status) Title() string {
	switch s {
	case Todo:
		return "A Fazer"
	case InProgress:
		return "Em Progresso"
	case Review:
		return "Em Revisão"
	case Done:
		return "Concluído"
	default:
		return string(s)
	}
}

// DroppableId is the id of the drop target of the column.
func (s Status) DroppableId() string {
	return "droppable-" + string(s)
}

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

var Priorities = []Priority{Low, Medium, High}

// Label is the badge of the priority on cards. Unknown priorities are labeled with themselves.
func (p Priority) Label() string {
	switch p {
	case Low:
		return "Baixa"
	case Medium:
		return "Média"
	case High:
		return "Alta"
	default:
		return string(p)
	}
}

type Task struct {
	Id          string
	Title       string
	Description string
	Status      Status
	Priority    Priority

	// user ids. empty when unknown.
	Assignee string
	Creator  string

	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time

	// YYYY-MM-DD, or empty for tasks without deadline.
	EndDate string
}

func (t Task) clone() Task {
	t.Tags = slices.Clone(t.Tags)
	return t
}

type User struct {
	Id        string
	FirstName string
	LastName  string

	// full name
	Name string

	// YYYY-MM-DD
	BirthDate string
}
