package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// MinimumAge is the youngest age to be a user.
const MinimumAge = 18

const (
	maxFirstNameLength = 30
	maxLastNameLength  = 100
)

var personName = regexp.MustCompile(`^[\p{L} .'-]+$`)

type User struct {
	Id        int64
	FirstName string
	LastName  string
	BirthDate time.Time
}

// FullName is "first last", trimmed.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials are the first letters of the first and the last word of the full name.
//
// A single-word name has a single initial.
func (u User) Initials() string {
	words := strings.Fields(u.FullName())
	if len(words) == 0 {
		return ""
	}
	b := new(strings.Builder)
	b.WriteRune(firstRune(words[0]))
	if len(words) > 1 {
		b.WriteRune(firstRune(words[len(words)-1]))
	}
	return strings.ToUpper(b.String())
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.ToUpper(r)
}

// Age is the number of whole years from the birth date to today.
func (u User) Age(today time.Time) int {
	return YearsBetween(u.BirthDate, today)
}

// YearsBetween counts whole years from `from` to `to`.
func YearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years -= 1
	}
	return years
}

func (u User) Equal(o User) bool {
	return u.Id == o.Id &&
		u.FirstName == o.FirstName &&
		u.LastName == o.LastName &&
		u.BirthDate.Equal(o.BirthDate)
}

// UserSpec is what is needed to create or to replace a user.
type UserSpec struct {
	FirstName string

	LastName string

	// zero means "not given".
	BirthDate time.Time
}

// Validate checks the spec as of today.
//
// # Returns
//
// - error: *ValidationError with all violations, or nil.
func (s UserSpec) Validate(today time.Time) error {
	v := &validator{}

	validateName(v, "firstName", "First name", s.FirstName, maxFirstNameLength)
	validateName(v, "lastName", "Last name", s.LastName, maxLastNameLength)

	if v.check(!s.BirthDate.IsZero(), "birthDate", "Birth date is required") {
		birth := DateOf(s.BirthDate)
		if v.check(birth.Before(DateOf(today)), "birthDate", "Birth date must be in the past") {
			v.check(
				YearsBetween(birth, DateOf(today)) >= MinimumAge,
				"birthDate", "User must be at least 18 years old",
			)
		}
	}

	return v.err()
}

func validateName(v *validator, field, label, value string, limit int) {
	if !v.check(!isBlank(value), field, label+" is required") {
		return
	}
	if utf8.RuneCountInString(value) > limit {
		v.fail(field, label+" can have at most "+strconv.Itoa(limit)+" characters")
	}
	if !personName.MatchString(value) {
		v.fail(field, label+" must contain only letters")
	}
}

// UserQuery narrows users down.
type UserQuery struct {
	// Name matches users whose first or last name contains it, case-insensitively.
	//
	// Empty matches everyone.
	Name string
}

// Match tells u is in the query.
func (q UserQuery) Match(u User) bool {
	if q.Name == "" {
		return true
	}
	term := strings.ToLower(q.Name)
	return strings.Contains(strings.ToLower(u.FirstName), term) ||
		strings.Contains(strings.ToLower(u.LastName), term)
}
