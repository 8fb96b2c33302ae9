package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	apiusers "github.com/taskboard/taskboard/pkg/api/types/users"
	"github.com/taskboard/taskboard/pkg/domain"
	"github.com/taskboard/taskboard/pkg/utils/rfctime"
)

type Detail struct {
	Id          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	EndDate     *rfctime.Date    `json:"endDate"`
	Creator     apiusers.Detail  `json:"creator"`
	Assignee    apiusers.Detail  `json:"assignee"`
	Tags        []string         `json:"tags"`
	Priority    string           `json:"priority"`
	Status      string           `json:"status"`
	CreatedAt   rfctime.RFC3339  `json:"createdAt"`
	UpdatedAt   *rfctime.RFC3339 `json:"updatedAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Title == o.Title &&
		d.Description == o.Description &&
		d.EndDate.Equal(o.EndDate) &&
		d.Creator.Equal(o.Creator) &&
		d.Assignee.Equal(o.Assignee) &&
		slices.Equal(d.Tags, o.Tags) &&
		d.Priority == o.Priority &&
		d.Status == o.Status &&
		d.CreatedAt.Equal(&o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}

func ComposeDetail(t domain.Task, today time.Time) Detail {
	d := Detail{
		Id:          t.Id,
		Title:       t.Title,
		Description: t.Description,
		Creator:     apiusers.ComposeDetail(t.Creator, today),
		Assignee:    apiusers.ComposeDetail(t.Assignee, today),
		Tags:        slices.Clone(t.Tags),
		Priority:    t.Priority.String(),
		Status:      t.Status.String(),
		CreatedAt:   rfctime.RFC3339(t.CreatedAt),
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if t.EndDate != nil {
		e := rfctime.NewDate(*t.EndDate)
		d.EndDate = &e
	}
	if t.UpdatedAt != nil {
		u := rfctime.RFC3339(*t.UpdatedAt)
		d.UpdatedAt = &u
	}
	return d
}

// UserId is an id of a user, given as a JSON number or a numeric string.
type UserId int64

func (id *UserId) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) != 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
		if len(b) == 0 {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("user id should be an integer: %s", b)
	}
	*id = UserId(n)
	return nil
}

// UserRef is a reference to a user in the object form, {"id": ...}.
type UserRef struct {
	Id UserId `json:"id"`
}

// pick returns the id given, preferring the flat form.
func pick(flat *UserId, ref *UserRef) *int64 {
	switch {
	case flat != nil:
		v := int64(*flat)
		return &v
	case ref != nil:
		v := int64(ref.Id)
		return &v
	default:
		return nil
	}
}

// legacy numeric codes of priorities.
var priorityCodes = map[string]domain.Priority{
	"1": domain.Low,
	"2": domain.Medium,
	"3": domain.High,
}

// ParsePriority reads a priority name (ignoring case) or a legacy code ("1", "2" or "3").
//
// The result can be invalid.
func ParsePriority(s string) domain.Priority {
	if p, ok := priorityCodes[strings.TrimSpace(s)]; ok {
		return p
	}
	return domain.AsPriority(s)
}

// Spec is the request body to create a task.
//
// Users can be given as "creatorId": 1 or as "creator": {"id": 1}.
type Spec struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	EndDate     *rfctime.Date `json:"endDate,omitempty"`
	CreatorId   *UserId       `json:"creatorId,omitempty"`
	AssigneeId  *UserId       `json:"assigneeId,omitempty"`
	Creator     *UserRef      `json:"creator,omitempty"`
	Assignee    *UserRef      `json:"assignee,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
}

func (s Spec) Domain() domain.TaskSpec {
	ret := domain.TaskSpec{
		Title:       s.Title,
		Description: s.Description,
		Tags:        s.Tags,
		Status:      domain.AsTaskStatus(s.Status),
	}
	if strings.TrimSpace(s.Priority) != "" {
		ret.Priority = ParsePriority(s.Priority)
	}
	if s.EndDate != nil {
		ret.EndDate = s.EndDate.Time()
	}
	if id := pick(s.CreatorId, s.Creator); id != nil {
		ret.CreatorId = *id
	}
	if id := pick(s.AssigneeId, s.Assignee); id != nil {
		ret.AssigneeId = *id
	}
	return ret
}

// Change is the request body to update a task. Fields not given are kept.
type Change struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	EndDate     *rfctime.Date `json:"endDate,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Priority    *string       `json:"priority,omitempty"`
	Status      *string       `json:"status,omitempty"`
	AssigneeId  *UserId       `json:"assigneeId,omitempty"`
	Assignee    *UserRef      `json:"assignee,omitempty"`
}

func (c Change) Domain() domain.TaskChange {
	ret := domain.TaskChange{
		Title:       c.Title,
		Description: c.Description,
		Tags:        c.Tags,
		AssigneeId:  pick(c.AssigneeId, c.Assignee),
	}
	if c.EndDate != nil {
		e := c.EndDate.Time()
		ret.EndDate = &e
	}
	if c.Priority != nil && strings.TrimSpace(*c.Priority) != "" {
		p := ParsePriority(*c.Priority)
		ret.Priority = &p
	}
	if c.Status != nil && strings.TrimSpace(*c.Status) != "" {
		s := domain.AsTaskStatus(*c.Status)
		ret.Status = &s
	}
	return ret
}

// StatusChange is the request body to move a task.
type StatusChange struct {
	Status string `json:"status"`
}

type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
}

func ComposeStats(s domain.TaskStats) Stats {
	return Stats{
		Total:      s.Total,
		Completed:  s.Completed,
		InProgress: s.InProgress,
		Overdue:    s.Overdue,
	}
}
