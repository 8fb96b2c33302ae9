package domain

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	Pending    TaskStatus = "PENDING"
	InProgress TaskStatus = "IN_PROGRESS"
	Completed  TaskStatus = "COMPLETED"
	Cancelled  TaskStatus = "CANCELLED"
)

// TaskStatuses lists all statuses in board order.
var TaskStatuses = []TaskStatus{Pending, InProgress, Completed, Cancelled}

const InvalidStatusMessage = "Invalid status value. Allowed values: PENDING, IN_PROGRESS, COMPLETED, CANCELLED"

// AsTaskStatus normalizes s (trimmed, upper-cased).
//
// The result may be invalid. Check it with Valid.
func AsTaskStatus(s string) TaskStatus {
	return TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
}

func (s TaskStatus) Valid() bool {
	return slices.Contains(TaskStatuses, s)
}

func (s TaskStatus) String() string {
	return string(s)
}

type Priority string

const (
	Low    Priority = "LOW"
	Medium Priority = "MEDIUM"
	High   Priority = "HIGH"
)

var Priorities = []Priority{Low, Medium, High}

const InvalidPriorityMessage = "Priority must be classified in LOW, MEDIUM or HIGH"

// AsPriority normalizes s (trimmed, upper-cased).
//
// The result may be invalid. Check it with Valid.
func AsPriority(s string) Priority {
	return Priority(strings.ToUpper(strings.TrimSpace(s)))
}

func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

func (p Priority) String() string {
	return string(p)
}

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000
	maxTags              = 7
	maxTagLength         = 30
)

type Task struct {
	Id          int64
	Title       string
	Description string

	// nil when the task has no deadline.
	EndDate *time.Time

	Creator  User
	Assignee User

	Tags     []string
	Priority Priority
	Status   TaskStatus

	CreatedAt time.Time

	// nil until the first change.
	UpdatedAt *time.Time
}

// Overdue reports the task has passed its end date (before today) without completion.
func (t Task) Overdue(today time.Time) bool {
	if t.EndDate == nil || t.Status == Completed {
		return false
	}
	return DateOf(*t.EndDate).Before(DateOf(today))
}

// TaskSpec is what is needed to create a task.
type TaskSpec struct {
	Title       string
	Description string

	// zero means "not given".
	EndDate time.Time

	// 0 means "not given".
	CreatorId  int64
	AssigneeId int64

	Tags     []string
	Priority Priority
	Status   TaskStatus
}

// Validate checks the spec as of today.
//
// # Returns
//
// - error: *ValidationError with all violations, or nil.
func (s TaskSpec) Validate(today time.Time) error {
	v := &validator{}

	if v.check(!isBlank(s.Title), "title", "Title is required") {
		validateTitle(v, s.Title)
	}
	if v.check(!isBlank(s.Description), "description", "Description is required") {
		validateDescription(v, s.Description)
	}
	if v.check(!s.EndDate.IsZero(), "endDate", "End date is required") {
		validateEndDate(v, s.EndDate, today)
	}
	v.check(s.CreatorId != 0, "creatorId", "Creator user ID is required")
	v.check(s.AssigneeId != 0, "assigneeId", "Assignee user ID is required")
	validateTags(v, s.Tags)
	if v.check(s.Priority != "", "priority", "Priority is required") {
		v.check(s.Priority.Valid(), "priority", InvalidPriorityMessage)
	}
	if v.check(s.Status != "", "status", "Status is required") {
		v.check(s.Status.Valid(), "status", InvalidStatusMessage)
	}

	return v.err()
}

func validateTitle(v *validator, title string) {
	v.check(
		utf8.RuneCountInString(title) <= maxTitleLength,
		"title", "Title must have less than 100 characters",
	)
}

func validateDescription(v *validator, description string) {
	v.check(
		utf8.RuneCountInString(description) <= maxDescriptionLength,
		"description", "Description must have less than 1000 characters",
	)
}

func validateEndDate(v *validator, endDate time.Time, today time.Time) {
	v.check(
		!DateOf(endDate).Before(DateOf(today)),
		"endDate", "End date cannot be in the past",
	)
}

func validateTags(v *validator, tags []string) {
	v.check(len(tags) <= maxTags, "tags", "Maximum of 7 tags allowed")
	for _, t := range tags {
		if !v.check(
			utf8.RuneCountInString(t) <= maxTagLength,
			"tags", "Each tag must have less than 30 characters",
		) {
			return
		}
	}
}

// TaskChange is a partial update of a task.
//
// nil fields are kept as they are.
// Blank title and description, and empty tags are also ignored.
type TaskChange struct {
	Title       *string
	Description *string
	EndDate     *time.Time
	Tags        []string
	Priority    *Priority
	Status      *TaskStatus
	AssigneeId  *int64
}

func (c TaskChange) Validate(today time.Time) error {
	v := &validator{}

	if c.Title != nil && !isBlank(*c.Title) {
		validateTitle(v, *c.Title)
	}
	if c.Description != nil && !isBlank(*c.Description) {
		validateDescription(v, *c.Description)
	}
	if c.EndDate != nil {
		validateEndDate(v, *c.EndDate, today)
	}
	if len(c.Tags) != 0 {
		validateTags(v, c.Tags)
	}
	if c.Priority != nil {
		v.check(c.Priority.Valid(), "priority", InvalidPriorityMessage)
	}
	if c.Status != nil {
		v.check(c.Status.Valid(), "status", InvalidStatusMessage)
	}
	if c.AssigneeId != nil {
		v.check(*c.AssigneeId != 0, "assigneeId", "Assignee user ID is required")
	}

	return v.err()
}

// Apply returns a copy of t with the change, except for the assignee.
//
// Resolving the assignee is a business of the storage.
func (c TaskChange) Apply(t Task) Task {
	if c.Title != nil && !isBlank(*c.Title) {
		t.Title = *c.Title
	}
	if c.Description != nil && !isBlank(*c.Description) {
		t.Description = *c.Description
	}
	if c.EndDate != nil {
		d := DateOf(*c.EndDate)
		t.EndDate = &d
	}
	if len(c.Tags) != 0 {
		t.Tags = slices.Clone(c.Tags)
	}
	if c.Priority != nil {
		t.Priority = *c.Priority
	}
	if c.Status != nil {
		t.Status = *c.Status
	}
	return t
}

// TaskQuery narrows tasks down. Zero value matches all tasks.
type TaskQuery struct {
	// tasks assigned to the user
	AssigneeId *int64

	// tasks having a tag containing Tag (case-insensitive).
	//
	// When ExactTag is true, the tag should equal to Tag.
	Tag      string
	ExactTag bool
}

// Match tells t is in the query.
func (q TaskQuery) Match(t Task) bool {
	if q.AssigneeId != nil && t.Assignee.Id != *q.AssigneeId {
		return false
	}
	if q.Tag == "" {
		return true
	}
	if q.ExactTag {
		return slices.Contains(t.Tags, q.Tag)
	}
	term := strings.ToLower(q.Tag)
	return slices.ContainsFunc(t.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}
