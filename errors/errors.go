// Package errors provides a string based error type so packages can declare
// their failure categories as constants and attach causes to them.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSeparator separates the message of an Error from the cause it wraps.
const ErrSeparator = " -- "

// Error is a string based error allowing the definition of const errors in packages.
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is reports whether target is this Error, either bare or carrying a cause.
func (s Error) Is(target error) bool {
	if target == nil {
		return false
	}
	msg := target.Error()
	return msg == string(s) || strings.HasPrefix(msg, string(s)+ErrSeparator)
}

// As sets target to this Error when target is a *Error.
func (s Error) As(target any) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	*t = s
	return true
}

// Wrap returns an error with err attached as the cause of this Error.
func (s Error) Wrap(err error) error {
	return wrappedError{cause: err, msg: string(s)}
}

// Wrapf formats a cause and attaches it to this Error.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{cause: fmt.Errorf(format, args...), msg: string(s)}
}

type wrappedError struct {
	cause error
	msg   string
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return w.msg + ErrSeparator + w.cause.Error()
	}
	return w.msg
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) As(target any) bool {
	return Error(w.msg).As(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// The below shadow the standard library so callers only need to import this package.

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// JoinedErrors is implemented by errors created with Join.
type JoinedErrors interface {
	Unwrap() []error
}

// UnwrapErrors returns the errors joined into err, or err itself.
func UnwrapErrors(err error) []error {
	if err == nil {
		return nil
	}

	if je, ok := err.(JoinedErrors); ok {
		return je.Unwrap()
	}

	var w wrappedError
	if errors.As(err, &w) {
		if je, ok := w.cause.(JoinedErrors); ok {
			return je.Unwrap()
		}
	}
	return []error{err}
}
