package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnauthorized    ErrorKind = "unauthorized"
	KindNotFound        ErrorKind = "not_found"
	KindValidation      ErrorKind = "validation_failed"
	KindDomainViolation ErrorKind = "domain_violation"
	KindUpstream        ErrorKind = "upstream"
)

// Error is the single failure type returned by services. Callers branch on Kind.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Invalid(msg string) error      { return &Error{Kind: KindValidation, Msg: msg} }

func Invalidf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Violationf(format string, args ...any) error {
	return &Error{Kind: KindDomainViolation, Msg: fmt.Sprintf(format, args...)}
}

func Upstream(msg string, err error) error { return &Error{Kind: KindUpstream, Msg: msg, Err: err} }

// KindOf reports the kind of err. Errors that did not come from this package
// are treated as upstream failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUpstream
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k ErrorKind) bool { return err != nil && KindOf(err) == k }
