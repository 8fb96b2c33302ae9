package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/taskboard/taskboard/pkg/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUser_Names(t *testing.T) {
	for name, testcase := range map[string]struct {
		when         domain.User
		thenFullName string
		thenInitials string
	}{
		"two words": {
			when:         domain.User{FirstName: "João", LastName: "Silva Oliveira"},
			thenFullName: "João Silva Oliveira",
			thenInitials: "JO",
		},
		"lower case": {
			when:         domain.User{FirstName: "ana", LastName: "ferreira"},
			thenFullName: "ana ferreira",
			thenInitials: "AF",
		},
		"single word": {
			when:         domain.User{FirstName: "Pedro", LastName: ""},
			thenFullName: "Pedro",
			thenInitials: "P",
		},
		"empty": {
			when:         domain.User{},
			thenFullName: "",
			thenInitials: "",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if got := testcase.when.FullName(); got != testcase.thenFullName {
				t.Errorf("FullName: got %q, want %q", got, testcase.thenFullName)
			}
			if got := testcase.when.Initials(); got != testcase.thenInitials {
				t.Errorf("Initials: got %q, want %q", got, testcase.thenInitials)
			}
		})
	}
}

func TestUser_Age(t *testing.T) {
	u := domain.User{BirthDate: date(1990, time.June, 15)}

	for name, testcase := range map[string]struct {
		today time.Time
		then  int
	}{
		"the day before birthday": {today: date(2025, time.June, 14), then: 34},
		"on birthday":             {today: date(2025, time.June, 15), then: 35},
		"after birthday":          {today: date(2025, time.December, 1), then: 35},
		"earlier month":           {today: date(2025, time.January, 30), then: 34},
	} {
		t.Run(name, func(t *testing.T) {
			if got := u.Age(testcase.today); got != testcase.then {
				t.Errorf("got %d, want %d", got, testcase.then)
			}
		})
	}
}

func TestUserSpec_Validate(t *testing.T) {
	today := date(2025, time.June, 25)

	t.Run("a valid spec passes", func(t *testing.T) {
		spec := domain.UserSpec{
			FirstName: "Maria", LastName: "D'Ávila Souza-Santos",
			BirthDate: date(1985, time.May, 15),
		}
		if err := spec.Validate(today); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("someone turning 18 today is an adult", func(t *testing.T) {
		spec := domain.UserSpec{FirstName: "A", LastName: "B", BirthDate: date(2007, time.June, 25)}
		if err := spec.Validate(today); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	for name, testcase := range map[string]struct {
		when domain.UserSpec
		then []string
	}{
		"everything is missing": {
			when: domain.UserSpec{FirstName: " ", LastName: ""},
			then: []string{
				"Birth date is required",
				"First name is required",
				"Last name is required",
			},
		},
		"names are too long and have digits": {
			when: domain.UserSpec{
				FirstName: strings.Repeat("a", 30) + "1",
				LastName:  strings.Repeat("b", 101),
				BirthDate: date(1990, time.January, 1),
			},
			then: []string{
				"First name can have at most 30 characters",
				"First name must contain only letters",
				"Last name can have at most 100 characters",
			},
		},
		"birth date is today": {
			when: domain.UserSpec{FirstName: "A", LastName: "B", BirthDate: today},
			then: []string{"Birth date must be in the past"},
		},
		"17 years old": {
			when: domain.UserSpec{FirstName: "A", LastName: "B", BirthDate: date(2007, time.June, 26)},
			then: []string{"User must be at least 18 years old"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := testcase.when.Validate(today)

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("not a ValidationError: %v", err)
			}
			if !errors.Is(err, domain.ErrInvalid) {
				t.Errorf("not ErrInvalid: %v", err)
			}
			if diff := cmp.Diff(testcase.then, verr.Messages()); diff != "" {
				t.Errorf("messages (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUserQuery_Match(t *testing.T) {
	u := domain.User{FirstName: "Carlos", LastName: "Mendes Rodrigues"}

	for term, then := range map[string]bool{
		"":       true,
		"carl":   true,
		"MENDES": true,
		"drig":   true,
		"ana":    false,
		"s M":    false,
	} {
		if got := (domain.UserQuery{Name: term}).Match(u); got != then {
			t.Errorf("Match(%q): got %v, want %v", term, got, then)
		}
	}
}
