package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of all error responses.
type ErrorResponse struct {
	Message ErrorMessage `json:"message"`
}

type ErrorMessage struct {
	Reason string `json:"reason"`
	Advice string `json:"advice,omitempty"`
	Cause  error  `json:"-"`
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Reason *string `json:"reason"`
		Advice *string `json:"advice"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Reason == nil {
		return fmt.Errorf(`required field missing: "reason"`)
	}
	em.Reason = *f.Reason
	if f.Advice != nil {
		em.Advice = *f.Advice
	}
	return nil
}

func (e ErrorMessage) String() string {
	lines := []string{e.Reason}
	if e.Advice != "" {
		lines = append(lines, e.Advice)
	}
	if e.Cause != nil {
		lines = append(lines, fmt.Sprint(" caused by: ", e.Cause.Error()))
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}

type ErrorMessageOption func(in *ErrorMessage) *ErrorMessage

func WithAdvice(advice string) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if advice != "" {
			in.Advice = advice
		}
		return in
	}
}

func WithError(err error) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if err != nil {
			in.Cause = err
		}
		return in
	}
}

func NewErrorMessage(code int, reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := ErrorMessage{Reason: reason}
	for _, opt := range opts {
		msg = *opt(&msg)
	}

	return echo.NewHTTPError(code, msg).SetInternal(msg)
}

// BadRequest is for requests broken or violating rules.
func BadRequest(reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusBadRequest, reason, opts...)
}

// NotFound is for requests to missing entities. reason tells what is missing, like "Task not found".
func NotFound(reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, reason, opts...)
}

func Conflict(reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(http.StatusConflict, reason, opts...)
}

func InternalServerError(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusInternalServerError,
		"unexpected error",
		WithAdvice("ask your system admin."),
		WithError(err),
	)
}

// Handler writes errors as ErrorResponse.
//
// Errors raised by echo itself (unknown routes, for example) are reshaped too.
// Other errors are passed to fallback.
func Handler(fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := new(echo.HTTPError)
		if !errors.As(err, &he) {
			fallback(err, c)
			return
		}

		var resp ErrorResponse
		switch m := he.Message.(type) {
		case ErrorMessage:
			resp = ErrorResponse{Message: m}
		case string:
			resp = ErrorResponse{Message: ErrorMessage{Reason: m}}
		default:
			resp = ErrorResponse{Message: ErrorMessage{Reason: http.StatusText(he.Code)}}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(he.Code)
		} else {
			werr = c.JSON(he.Code, resp)
		}
		if werr != nil {
			c.Logger().Error(werr)
		}
	}
}
