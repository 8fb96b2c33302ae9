// Package errors is errors shown to users of the command line.
package errors

import (
	"fmt"
	"strings"
)

type Verbose interface {
	Verbose() string
}

// CUIError is an error with a message for humans, and a longer one for --verbose.
type CUIError interface {
	error
	Verbose
}

type cuierror struct {
	summary string
	verbose string
	detail  func(summary string) (string, error)
	cause   error
}

func (ce *cuierror) Unwrap() error {
	return ce.cause
}

func (ce *cuierror) Error() string {
	if ce.detail == nil {
		return ce.summary
	}
	message, err := ce.detail(ce.summary)
	if err != nil {
		return fmt.Sprintf("%s\n(cannot build detailed message: %s)", ce.summary, err)
	}
	return message
}

func (ce *cuierror) Verbose() string {
	lines := []string{ce.Error()}
	if ce.verbose != "" {
		lines = append(lines, "("+ce.verbose+")")
	}
	switch cause := ce.cause.(type) {
	case nil:
	case Verbose:
		lines = append(lines, "caused by: "+cause.Verbose())
	default:
		lines = append(lines, "caused by: "+cause.Error())
	}
	return strings.Join(lines, "\n")
}

type CuiErrorOption func(*cuierror) *cuierror

func NewCuiError(summary string, options ...CuiErrorOption) CUIError {
	err := &cuierror{summary: summary}
	for _, o := range options {
		err = o(err)
	}
	return err
}

// WithVerbose adds a note shown only in verbose messages.
func WithVerbose(verbose string) CuiErrorOption {
	return func(ce *cuierror) *cuierror {
		ce.verbose = verbose
		return ce
	}
}

// WithDetail replaces the message with the one built from the summary.
func WithDetail(printer func(summary string) (string, error)) CuiErrorOption {
	return func(ce *cuierror) *cuierror {
		ce.detail = printer
		return ce
	}
}

// WithAdvice appends reason and advice of the server to the summary.
func WithAdvice(reason, advice string) CuiErrorOption {
	return WithDetail(func(summary string) (string, error) {
		lines := []string{summary}
		if reason != "" {
			lines = append(lines, "  reason: "+reason)
		}
		if advice != "" {
			lines = append(lines, "  advice: "+advice)
		}
		return strings.Join(lines, "\n"), nil
	})
}

func WithCause(err error) CuiErrorOption {
	return func(ce *cuierror) *cuierror {
		ce.cause = err
		return ce
	}
}
