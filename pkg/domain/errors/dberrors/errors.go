package dberrors

import (
	"fmt"

	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// MissingUser reports the user is missing, in the role of a task.
//
// err wraps both of sentinel (ErrMissingCreator or ErrMissingAssignee) and Missing.
func MissingUser(sentinel error, id int64) error {
	return fmt.Errorf("%w: %w", sentinel, Missing{Table: "user", Identity: fmt.Sprint(id)})
}
