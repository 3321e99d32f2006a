// ierrors package provides a thin facade over "github.com/cockroachdb/errors".
// Errors created or wrapped by this package carry a stacktrace of the place where they were created and stay
// compatible with the "errors" package of the standard library.
//
//nolint:goerr113
package ierrors

import (
	"github.com/cockroachdb/errors"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
// If the format specifier includes a %w verb with an error operand, the returned error wraps the operand.
func Errorf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}

// Unwrap returns the result of calling the Unwrap method on err, if err's type contains an Unwrap method returning
// error. Otherwise, Unwrap returns nil.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target, and if one is found, sets target to that error value
// and returns true. Otherwise, it returns false.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap prepends an error with a message and wraps it into a new error.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf prepends an error with a message format specifier and arguments and wraps it into a new error.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// WithMessage prepends a message to the error without adding a stacktrace.
func WithMessage(err error, message string) error {
	return errors.WithMessage(err, message)
}

// WithMessagef prepends a message format specifier and arguments to the error without adding a stacktrace.
func WithMessagef(err error, format string, args ...any) error {
	return errors.WithMessagef(err, format, args...)
}

// WithStack annotates the error with a stacktrace of the caller.
func WithStack(err error) error {
	return errors.WithStackDepth(err, 1)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
// Join returns nil if errs contains no non-nil values.
// The error formats as the concatenation of the strings obtained
// by calling the Error method of each element of errs, with a newline
// between each string.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
