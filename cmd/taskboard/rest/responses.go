package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	cerr "github.com/taskboard/taskboard/cmd/taskboard/errors"
	apierr "github.com/taskboard/taskboard/pkg/api/types/errors"
)

// StatusCodeRange is a class of status codes, like 4xx.
type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = 0
	Status1xx     StatusCodeRange = 1
	Status2xx     StatusCodeRange = 2
	Status3xx     StatusCodeRange = 3
	Status4xx     StatusCodeRange = 4
	Status5xx     StatusCodeRange = 5
)

var rangeNames = map[StatusCodeRange]string{
	Status1xx: "informational response",
	Status2xx: "success",
	Status3xx: "redirect",
	Status4xx: "client error",
	Status5xx: "server error",
}

func (sc StatusCodeRange) String() string {
	if n, ok := rangeNames[sc]; ok {
		return n
	}
	return "unknown status"
}

func rangeOf(resp *http.Response) StatusCodeRange {
	if resp.StatusCode < 100 || 600 <= resp.StatusCode {
		return StatusUnknown
	}
	return StatusCodeRange(resp.StatusCode / 100)
}

// MessageFor is titles of errors, per status code range or per status code.
//
// Status codes have precedence over their ranges.
type MessageFor struct {
	Range map[StatusCodeRange]string
	Code  map[int]string
}

func (mf MessageFor) of(resp *http.Response) string {
	if m, ok := mf.Code[resp.StatusCode]; ok {
		return m
	}
	scr := rangeOf(resp)
	if m, ok := mf.Range[scr]; ok {
		return m
	}
	return scr.String()
}

// ResponseError is an error response from the server.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int

	// Message is the server's message. Reason is empty when
	// the response is not in the shape of the error envelope.
	Message apierr.ErrorMessage

	// Body is the raw response body.
	Body string
}

func (re *ResponseError) Error() string {
	reason := re.Message.Reason
	if reason == "" {
		reason = strings.TrimSpace(re.Body)
	}
	return fmt.Sprintf("%s %s: status code = %d: %s", re.Method, re.URL, re.StatusCode, reason)
}

// StatusCodeOf returns the status code of the error response in err's chain.
func StatusCodeOf(err error) (int, bool) {
	re := new(ResponseError)
	if !errors.As(err, &re) {
		return 0, false
	}
	return re.StatusCode, true
}

func errorOf(resp *http.Response, messageFor MessageFor) error {
	message := messageFor.of(resp)
	re := &ResponseError{StatusCode: resp.StatusCode}
	if req := resp.Request; req != nil {
		re.Method = req.Method
		re.URL = req.URL.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cerr.NewCuiError(
			fmt.Sprintf("%s\ncannot read server message: %s", message, err),
			cerr.WithCause(errors.Join(re, err)),
		)
	}
	re.Body = string(body)

	eresp := new(apierr.ErrorResponse)
	if err := json.Unmarshal(body, eresp); err == nil {
		re.Message = eresp.Message
		return cerr.NewCuiError(
			message,
			cerr.WithAdvice(eresp.Message.Reason, eresp.Message.Advice),
			cerr.WithCause(re),
		)
	}

	return cerr.NewCuiError(
		message,
		cerr.WithDetail(func(summary string) (string, error) {
			return summary + "\n" + string(body), nil
		}),
		cerr.WithCause(re),
	)
}

// unmarshal http response which has json content.
//
// It returns an error when the status code is not 2xx,
// or when the body is not shaped of v.
func unmarshalJsonResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	defer resp.Body.Close()
	if rangeOf(resp) != Status2xx {
		return errorOf(resp, messageFor)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		message := fmt.Sprintf("unexpected error: %s (status code = %d)", err.Error(), resp.StatusCode)
		return cerr.NewCuiError(message, cerr.WithCause(err))
	}
	return nil
}

func unmarshalResponseDiscardingPayload(resp *http.Response, messageFor MessageFor) error {
	defer resp.Body.Close()
	if rangeOf(resp) != Status2xx {
		return errorOf(resp, messageFor)
	}
	_, err := io.Copy(io.Discard, resp.Body)
	return err
}
