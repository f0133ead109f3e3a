package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeDuplicateName    Code = "DUPLICATE_NAME"
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeTransportFailure Code = "TRANSPORT_FAILURE"
)

// Error is the single error type crossing repository, workflow and service
// boundaries. Reason carries the user-facing subject (a name, a field).
type Error struct {
	Code   Code
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("%s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func DuplicateName(name string) *Error {
	return &Error{Code: CodeDuplicateName, Reason: name}
}

func NotFound(name string) *Error {
	return &Error{Code: CodeNotFound, Reason: name}
}

func Validation(field string, err error) *Error {
	return &Error{Code: CodeValidation, Reason: field, Err: err}
}

func Transport(op string, err error) *Error {
	return &Error{Code: CodeTransportFailure, Reason: op, Err: err}
}

// CodeOf returns the code of the first *Error in the chain.
// Anything else is a transport failure from the caller's point of view.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeTransportFailure
}

func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
