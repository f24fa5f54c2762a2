package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrNotFound          ErrorKind = "not_found"
	ErrInvalidTransition ErrorKind = "invalid_transition"
	ErrPrecondition      ErrorKind = "precondition_failed"
	ErrValidation        ErrorKind = "validation_failed"
	ErrTerminalState     ErrorKind = "terminal_state"
	ErrConflict          ErrorKind = "conflict"
)

// Error is the typed failure every lifecycle operation returns for expected
// business conditions. Handlers map Kind to an HTTP status; Message is safe
// to show to the caller.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return NewError(ErrNotFound, format, args...)
}

func InvalidTransitionf(format string, args ...interface{}) *Error {
	return NewError(ErrInvalidTransition, format, args...)
}

func Preconditionf(format string, args ...interface{}) *Error {
	return NewError(ErrPrecondition, format, args...)
}

func Validationf(format string, args ...interface{}) *Error {
	return NewError(ErrValidation, format, args...)
}

func TerminalStatef(format string, args ...interface{}) *Error {
	return NewError(ErrTerminalState, format, args...)
}

// KindOf returns the kind of a lifecycle error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
