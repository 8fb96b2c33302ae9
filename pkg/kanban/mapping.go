package kanban

import (
	"strconv"
	"strings"
	"time"

	apitasks "github.com/taskboard/taskboard/pkg/api/types/tasks"
	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/domain"
	"github.com/taskboard/taskboard/pkg/utils/rfctime"
)

var statusToBackend = map[Status]domain.TaskStatus{
	Todo:       domain.Pending,
	InProgress: domain.InProgress,
	Done:       domain.Completed,
	Review:     domain.Cancelled,
}

var statusFromBackend = map[domain.TaskStatus]Status{
	domain.Pending:    Todo,
	domain.InProgress: InProgress,
	domain.Completed:  Done,
	domain.Cancelled:  Review,
}

// StatusToBackend maps a column to the API's status. Unknown columns are PENDING.
func StatusToBackend(s Status) domain.TaskStatus {
	if b, ok := statusToBackend[s]; ok {
		return b
	}
	return domain.Pending
}

// StatusFromBackend maps the API's status to a column. Unknown statuses are todo.
func StatusFromBackend(s string) Status {
	if st, ok := statusFromBackend[domain.AsTaskStatus(s)]; ok {
		return st
	}
	return Todo
}

// PriorityToBackend maps a priority to the API's. Unknown ones are MEDIUM.
func PriorityToBackend(p Priority) domain.Priority {
	switch p {
	case Low:
		return domain.Low
	case High:
		return domain.High
	default:
		return domain.Medium
	}
}

// PriorityFromBackend reads the API's priority, including legacy codes "1", "2" and "3".
//
// Unknown ones are medium.
func PriorityFromBackend(s string) Priority {
	switch apitasks.ParsePriority(s) {
	case domain.Low:
		return Low
	case domain.High:
		return High
	default:
		return Medium
	}
}

func id(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// ParseId reads a board id. It fails for empty or non-numeric ids.
func ParseId(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// TaskFromDetail maps a task in the API to the board.
//
// Missing timestamps are filled with now.
func TaskFromDetail(d apitasks.Detail, now time.Time) Task {
	t := Task{
		Id:          id(d.Id),
		Title:       d.Title,
		Description: d.Description,
		Status:      StatusFromBackend(d.Status),
		Priority:    PriorityFromBackend(d.Priority),
		Assignee:    id(d.Assignee.Id),
		Creator:     id(d.Creator.Id),
		Tags:        append([]string{}, d.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c := d.CreatedAt.Time(); !c.IsZero() {
		t.CreatedAt = c
	}
	if d.UpdatedAt != nil && !d.UpdatedAt.Time().IsZero() {
		t.UpdatedAt = d.UpdatedAt.Time()
	}
	if d.EndDate != nil {
		t.EndDate = d.EndDate.String()
	}
	return t
}

// UserFromDetail maps a user in the API to the board.
func UserFromDetail(d apiusers.Detail) User {
	u := User{
		Id:        id(d.Id),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		BirthDate: d.BirthDate.String(),
	}
	u.Name = FullName(u)
	return u
}

func userRef(s string) (*apitasks.UserRef, error) {
	n, err := ParseId(s)
	if err != nil {
		return nil, err
	}
	return &apitasks.UserRef{Id: apitasks.UserId(n)}, nil
}

func endDate(s string) (*rfctime.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := rfctime.ParseDate(ToISO(s))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SpecOf maps a new task on the board to the request body to create it.
//
// Users are referred in the object form. EndDate may be YYYY-MM-DD, YYYYMMDD or MM/DD/YYYY.
func SpecOf(t Task) (apitasks.Spec, error) {
	spec := apitasks.Spec{
		Title:       t.Title,
		Description: t.Description,
		Tags:        t.Tags,
		Priority:    PriorityToBackend(t.Priority).String(),
		Status:      StatusToBackend(t.Status).String(),
	}
	var err error
	if spec.Creator, err = userRef(t.Creator); err != nil {
		return apitasks.Spec{}, err
	}
	if spec.Assignee, err = userRef(t.Assignee); err != nil {
		return apitasks.Spec{}, err
	}
	if spec.EndDate, err = endDate(t.EndDate); err != nil {
		return apitasks.Spec{}, err
	}
	return spec, nil
}

// Edit is a partial change of a task on the board. nil fields are kept.
type Edit struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Assignee    *string
	Tags        []string
	EndDate     *string
}

// ChangeOf maps an edit on the board to the request body to update the task.
func ChangeOf(e Edit) (apitasks.Change, error) {
	c := apitasks.Change{
		Title:       e.Title,
		Description: e.Description,
		Tags:        e.Tags,
	}
	if e.Status != nil {
		s := StatusToBackend(*e.Status).String()
		c.Status = &s
	}
	if e.Priority != nil {
		p := PriorityToBackend(*e.Priority).String()
		c.Priority = &p
	}
	if e.Assignee != nil {
		ref, err := userRef(*e.Assignee)
		if err != nil {
			return apitasks.Change{}, err
		}
		c.Assignee = ref
	}
	if e.EndDate != nil {
		d, err := endDate(*e.EndDate)
		if err != nil {
			return apitasks.Change{}, err
		}
		c.EndDate = d
	}
	return c, nil
}
