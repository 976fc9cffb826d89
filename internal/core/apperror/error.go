// Package apperror defines the application error taxonomy.
// Every error that crosses a layer boundary is an *AppError so the
// HTTP layer can map it to a status code without string matching.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error class.
type Code string

const (
	CodeInternal               Code = "INTERNAL"
	CodeDatabase               Code = "DATABASE"
	CodeValidation             Code = "VALIDATION"
	CodeNotFound               Code = "NOT_FOUND"
	CodeDuplicate              Code = "DUPLICATE"
	CodeConflict               Code = "CONFLICT"
	CodeConcurrentModification Code = "CONCURRENT_MODIFICATION"
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeForbidden              Code = "FORBIDDEN"
	CodeUnavailable            Code = "UNAVAILABLE"
)

// AppError is the application error type.
type AppError struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a key-value detail to the error.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// HTTPStatus maps the error code to an HTTP status code.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate, CodeConflict, CodeConcurrentModification:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func Internal(message string, err error) *AppError {
	return Wrap(CodeInternal, message, err)
}

func Database(message string, err error) *AppError {
	return Wrap(CodeDatabase, message, err)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func NotFound(entity string, id any) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity)).WithDetail("id", fmt.Sprint(id))
}

func Duplicate(entity, field string, value any) *AppError {
	return New(CodeDuplicate, fmt.Sprintf("%s with this %s already exists", entity, field)).
		WithDetail("field", field).
		WithDetail("value", fmt.Sprint(value))
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func ConcurrentModification(entity string, id any) *AppError {
	return New(CodeConcurrentModification,
		fmt.Sprintf("%s was modified by another request", entity)).WithDetail("id", fmt.Sprint(id))
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Unavailable(message string) *AppError {
	return New(CodeUnavailable, message)
}

// As extracts an *AppError from err, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an *AppError with the given code.
func IsCode(err error, code Code) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}
