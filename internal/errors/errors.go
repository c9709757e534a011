// Package errors provides structured error types and error handling utilities.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Wrap creates a new error by wrapping an existing error with additional context.
// This uses fmt.Errorf with %w verb for proper error chain support.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// New creates a new error using fmt.Errorf.
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join wraps multiple errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Error kinds. Every error produced by the constructors below wraps exactly
// one of these, so callers match on kind with Is.
var (
	ErrConfiguration = errors.New("configuration conflict")
	ErrParse         = errors.New("parse error")
	ErrNotFound      = errors.New("not found")
	ErrPermission    = errors.New("permission denied")
	ErrIO            = errors.New("i/o error")
)

// kindError carries a kind sentinel, a message and an optional cause.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func newKind(kind error, cause error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// Configuration reports mutually exclusive or otherwise invalid invocation options.
func Configuration(format string, args ...interface{}) error {
	return newKind(ErrConfiguration, nil, format, args...)
}

// ConfigurationWithCause is Configuration with an underlying error.
func ConfigurationWithCause(cause error, format string, args ...interface{}) error {
	return newKind(ErrConfiguration, cause, format, args...)
}

// Parse reports an unparsable date, stamp or mode string.
func Parse(format string, args ...interface{}) error {
	return newKind(ErrParse, nil, format, args...)
}

// ParseWithCause is Parse with an underlying error.
func ParseWithCause(cause error, format string, args ...interface{}) error {
	return newKind(ErrParse, cause, format, args...)
}

// NotFound reports a missing reference file or an unanswerable type prompt.
func NotFound(format string, args ...interface{}) error {
	return newKind(ErrNotFound, nil, format, args...)
}

// NotFoundWithCause is NotFound with an underlying error.
func NotFoundWithCause(cause error, format string, args ...interface{}) error {
	return newKind(ErrNotFound, cause, format, args...)
}

// Permission reports a target the process may not create or modify.
func Permission(format string, args ...interface{}) error {
	return newKind(ErrPermission, nil, format, args...)
}

// PermissionWithCause is Permission with an underlying error.
func PermissionWithCause(cause error, format string, args ...interface{}) error {
	return newKind(ErrPermission, cause, format, args...)
}

// IO reports any other filesystem failure.
func IO(format string, args ...interface{}) error {
	return newKind(ErrIO, nil, format, args...)
}

// IOWithCause is IO with an underlying error.
func IOWithCause(cause error, format string, args ...interface{}) error {
	return newKind(ErrIO, cause, format, args...)
}

// Classify wraps an OS error with the matching kind and a message.
// Errors that already carry a kind are only wrapped with the message.
func Classify(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	switch {
	case KindOf(err) != nil:
		return Wrap(err, format, args...)
	case errors.Is(err, fs.ErrPermission):
		return PermissionWithCause(err, format, args...)
	case errors.Is(err, fs.ErrNotExist):
		return NotFoundWithCause(err, format, args...)
	default:
		return IOWithCause(err, format, args...)
	}
}

// KindOf returns the kind sentinel err carries, or nil.
func KindOf(err error) error {
	for _, kind := range []error{ErrConfiguration, ErrParse, ErrNotFound, ErrPermission, ErrIO} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
