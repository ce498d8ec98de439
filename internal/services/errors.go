package services

import (
	"errors"
	"net/http"
)

// Error is a failure that carries its HTTP status and a stable code for the
// response envelope. Err keeps the underlying cause for logging only.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a *Error from err, if present.
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

func ValidationError(code, message string, details any) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message, Details: details}
}

func ForbiddenError(code, message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: code, Message: message}
}

func NotFoundError(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message}
}

func ConflictError(code, message string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Message: message}
}

// TransitionError reports a status change the lifecycle does not allow.
func TransitionError(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

func UnauthorizedError(code, message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: message}
}

func UnavailableError(code, message string) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: code, Message: message}
}

func InternalError(code, message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: code, Message: message, Err: err}
}
