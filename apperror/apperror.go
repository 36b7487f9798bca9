package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Business error codes
const (
	CodeUnauthorized = 1001 // Missing or invalid token
	CodeForbidden    = 1004 // Role not allowed

	CodeValidation = 2001 // Missing or malformed input

	CodeNotFound = 3001 // Record absent
	CodeConflict = 3003 // State does not allow the operation

	CodeInternal = 5001 // Persistence or rendering failure
)

// AppError carries the HTTP status and business code of a failure.
// Err is kept for logging and is never written to the client.
type AppError struct {
	HTTPStatus int
	Code       int
	Message    string
	Err        error
	Data       interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code=%d, message=%s, err=%v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code=%d, message=%s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithData attaches details (e.g. per-field validation messages)
func (e *AppError) WithData(data interface{}) *AppError {
	e.Data = data
	return e
}

// New creates a new AppError
func New(httpStatus, code int, message string, err error) *AppError {
	return &AppError{HTTPStatus: httpStatus, Code: code, Message: message, Err: err}
}

func Validation(message string) *AppError {
	if message == "" {
		message = "invalid input"
	}
	return New(http.StatusBadRequest, CodeValidation, message, nil)
}

func NotFound(message string) *AppError {
	if message == "" {
		message = "resource not found"
	}
	return New(http.StatusNotFound, CodeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	if message == "" {
		message = "current state does not allow operation"
	}
	return New(http.StatusConflict, CodeConflict, message, nil)
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return New(http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return New(http.StatusForbidden, CodeForbidden, message, nil)
}

// Internal wraps err; the message returned to clients stays generic
func Internal(message string, err error) *AppError {
	if message == "" {
		message = "internal error"
	}
	return New(http.StatusInternalServerError, CodeInternal, message, err)
}

// As extracts an AppError from err. Plain errors become Internal.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("", err)
}

// StatusOf returns the HTTP status carried by err (200 for nil)
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return As(err).HTTPStatus
}

// IsCode reports whether err is an AppError with the given business code
func IsCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
