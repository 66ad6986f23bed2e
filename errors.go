// Package spark holds the engine-wide building blocks shared by every
// backend dialect: the semantic error categories backend errors are
// classified into, and the runtime configuration for query pushdown.
package spark

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for backend error classification.
var (
	// ErrExists is returned when an object to be created already exists.
	ErrExists = errors.New("spark: object already exists")

	// ErrNotFound is returned when a referenced object does not exist.
	ErrNotFound = errors.New("spark: object not found")
)

// ObjectKind identifies the kind of database object an error refers to.
type ObjectKind string

// Object kinds reported by classified backend errors.
const (
	Table     ObjectKind = "table"
	Namespace ObjectKind = "namespace"
)

// ExistsError reports that a table or view to be created already exists.
// The backend message is preserved verbatim and the native error is
// retained as the cause.
type ExistsError struct {
	msg   string
	cause error
}

// Error returns the error string.
func (e *ExistsError) Error() string {
	return fmt.Sprintf("spark: object already exists: %s", e.msg)
}

// Is reports whether the target error matches ExistsError.
// This allows errors.Is(existsErr, ErrExists) to return true.
func (e *ExistsError) Is(err error) bool {
	return err == ErrExists
}

// Message returns the backend message, verbatim.
func (e *ExistsError) Message() string {
	return e.msg
}

// Unwrap returns the native backend error.
func (e *ExistsError) Unwrap() error {
	return e.cause
}

// NewExistsError returns a new ExistsError wrapping the native error.
func NewExistsError(msg string, cause error) *ExistsError {
	return &ExistsError{msg: msg, cause: cause}
}

// IsExists returns true if the error is an ExistsError.
func IsExists(err error) bool {
	if err == nil {
		return false
	}
	var e *ExistsError
	return errors.As(err, &e) || errors.Is(err, ErrExists)
}

// NotFoundError reports that a referenced object (table or namespace)
// does not exist.
type NotFoundError struct {
	kind  ObjectKind
	msg   string
	cause error
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("spark: %s not found: %s", e.kind, e.msg)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Kind returns the kind of the missing object.
func (e *NotFoundError) Kind() ObjectKind {
	return e.kind
}

// Message returns the backend message, verbatim.
func (e *NotFoundError) Message() string {
	return e.msg
}

// Unwrap returns the native backend error.
func (e *NotFoundError) Unwrap() error {
	return e.cause
}

// NewNotFoundError returns a new NotFoundError for the given object kind.
func NewNotFoundError(kind ObjectKind, msg string, cause error) *NotFoundError {
	return &NotFoundError{kind: kind, msg: msg, cause: cause}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// UnclassifiedError is the fallback category for backend errors no
// dialect could classify. It preserves the message verbatim and keeps
// the original error as the cause, so nothing is lost for diagnostics.
type UnclassifiedError struct {
	msg   string
	cause error
}

// Error returns the error string.
func (e *UnclassifiedError) Error() string {
	return fmt.Sprintf("spark: %s", e.msg)
}

// Message returns the backend message, verbatim.
func (e *UnclassifiedError) Message() string {
	return e.msg
}

// Unwrap returns the original error.
func (e *UnclassifiedError) Unwrap() error {
	return e.cause
}

// NewUnclassifiedError returns a new UnclassifiedError wrapping the
// original error.
func NewUnclassifiedError(msg string, cause error) *UnclassifiedError {
	return &UnclassifiedError{msg: msg, cause: cause}
}

// IsUnclassified returns true if the error is an UnclassifiedError.
func IsUnclassified(err error) bool {
	if err == nil {
		return false
	}
	var e *UnclassifiedError
	return errors.As(err, &e)
}
