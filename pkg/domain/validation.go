package domain

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrInvalid is the root of all validation failures.
var ErrInvalid = errors.New("invalid")

// Violation is a broken rule of a field.
type Violation struct {
	Field   string
	Message string
}

// ValidationError reports all violations found in a spec at once.
type ValidationError struct {
	Violations []Violation
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Messages(), "; ")
}

func (v *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Messages returns messages, ordered by field name.
func (v *ValidationError) Messages() []string {
	vs := slices.Clone(v.Violations)
	slices.SortStableFunc(vs, func(a, b Violation) int { return cmp.Compare(a.Field, b.Field) })

	ret := make([]string, 0, len(vs))
	for _, vi := range vs {
		ret = append(ret, vi.Message)
	}
	return ret
}

// Has reports whether field has any violation.
func (v *ValidationError) Has(field string) bool {
	return slices.ContainsFunc(v.Violations, func(vi Violation) bool { return vi.Field == field })
}

type validator struct {
	violations []Violation
}

func (v *validator) fail(field, message string) {
	v.violations = append(v.violations, Violation{Field: field, Message: message})
}

func (v *validator) check(ok bool, field, message string) bool {
	if !ok {
		v.fail(field, message)
	}
	return ok
}

func (v *validator) err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.violations}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DateOf drops time of day, keeping the calendar date seen in t's location.
//
// Dates are kept as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
