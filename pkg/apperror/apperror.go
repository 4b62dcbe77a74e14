package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an application error.
type Code int

const (
	CodeValidation Code = iota + 1000
	CodeUnauthorized
	CodePermissionDenied
	CodeNotFound
	CodeIdentifierExhausted
	CodeInternal
)

// Error is the application error carried from services up to the HTTP layer.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func PermissionDenied(message string) *Error {
	return &Error{Code: CodePermissionDenied, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// IdentifierExhausted signals that identifier generation ran out of retry
// attempts against the uniqueness constraint.
func IdentifierExhausted(prefix string, err error) *Error {
	return &Error{
		Code:    CodeIdentifierExhausted,
		Message: fmt.Sprintf("could not allocate a unique %s identifier", prefix),
		Err:     err,
	}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Err: err}
}

// Is reports whether err carries the given application error code.
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
