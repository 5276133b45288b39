package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrPersistence
	ErrShapeMismatch
)

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Persistence marks a failed remote-store call. The underlying message is kept
// so the resource layer can surface it in the failure notification.
func Persistence(op string, err error) *AppError {
	return &AppError{
		Code:    ErrPersistence,
		Message: fmt.Sprintf("persistence failure during %s", op),
		Err:     err,
	}
}

// ShapeMismatch marks a JSON column that failed its type guard. Callers absorb
// it by substituting the resource's zero value; it is logged, never returned to
// the render path.
func ShapeMismatch(column string) *AppError {
	return &AppError{
		Code:    ErrShapeMismatch,
		Message: fmt.Sprintf("stored value in %s does not match expected shape", column),
	}
}

// IsPersistence reports whether err is (or wraps) a persistence failure.
func IsPersistence(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrPersistence
}

// IsNotFound reports whether err is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrNotFound
}
