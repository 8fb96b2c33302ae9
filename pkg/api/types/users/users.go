package users

import (
	"time"

	"github.com/taskboard/taskboard/pkg/domain"
	"github.com/taskboard/taskboard/pkg/utils/rfctime"
)

type Detail struct {
	Id        int64        `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	BirthDate rfctime.Date `json:"birthDate"`
	Age       int          `json:"age"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.FirstName == o.FirstName &&
		d.LastName == o.LastName &&
		d.BirthDate.Equal(&o.BirthDate) &&
		d.Age == o.Age
}

// FullName is "<first name> <last name>".
func (d Detail) FullName() string {
	return d.Domain().FullName()
}

func (d Detail) Domain() domain.User {
	return domain.User{
		Id:        d.Id,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		BirthDate: d.BirthDate.Time(),
	}
}

// ComposeDetail builds the wire form of u, with the age as of today.
func ComposeDetail(u domain.User, today time.Time) Detail {
	return Detail{
		Id:        u.Id,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: rfctime.NewDate(u.BirthDate),
		Age:       u.Age(today),
	}
}

// Spec is the request body to create or replace a user.
type Spec struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// nil when not given.
	BirthDate *rfctime.Date `json:"birthDate,omitempty"`
}

func (s Spec) Domain() domain.UserSpec {
	ret := domain.UserSpec{FirstName: s.FirstName, LastName: s.LastName}
	if s.BirthDate != nil {
		ret.BirthDate = s.BirthDate.Time()
	}
	return ret
}
