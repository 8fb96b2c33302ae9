package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	apierr "github.com/taskboard/taskboard/pkg/api/types/errors"
	"github.com/taskboard/taskboard/pkg/domain"
	domerr "github.com/taskboard/taskboard/pkg/domain/errors"
)

// Clock tells the current time. "today" of validations and ages comes from it.
type Clock func() time.Time

func (c Clock) today() time.Time {
	return domain.DateOf(c())
}

// invalid converts a validation failure into 400.
func invalid(err error) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return apierr.BadRequest("Validation failed", apierr.WithError(err))
	}
	return apierr.BadRequest(
		"Validation failed",
		apierr.WithAdvice(strings.Join(verr.Messages(), "; ")),
		apierr.WithError(err),
	)
}

// fromDB converts errors of the database into responses.
//
// missingReason is the reason when the requested entity itself is missing.
func fromDB(err error, missingReason string) error {
	switch {
	case errors.Is(err, domerr.ErrMissingCreator):
		return apierr.NotFound("Creator not found", apierr.WithError(err))
	case errors.Is(err, domerr.ErrMissingAssignee):
		return apierr.NotFound("Assignee not found", apierr.WithError(err))
	case errors.Is(err, domerr.ErrUserInUse):
		return apierr.Conflict(
			"User is referred by tasks",
			apierr.WithAdvice("delete or reassign tasks created by or assigned to the user first."),
			apierr.WithError(err),
		)
	case errors.Is(err, domerr.ErrMissing):
		return apierr.NotFound(missingReason, apierr.WithError(err))
	default:
		return apierr.InternalServerError(err)
	}
}

// idParam reads a path parameter as an id.
func idParam(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.BadRequest(
			"Invalid id",
			apierr.WithAdvice(name+" should be a positive integer, but: "+raw),
			apierr.WithError(err),
		)
	}
	return id, nil
}

// bind decodes JSON request body into v.
func bind[T any](c echo.Context) (T, error) {
	var v T
	if err := (&echo.DefaultBinder{}).BindBody(c, &v); err != nil {
		return v, apierr.BadRequest(
			"Malformed request body",
			apierr.WithAdvice("request body should be a JSON object."),
			apierr.WithError(err),
		)
	}
	return v, nil
}
