package errors

import (
	"errors"
	"fmt"
)

// Codes shared by the domain and transport layers.
const (
	CodeInvalidInput     = "invalid_input"
	CodeObservationError = "observation_error"
	CodeCacheError       = "cache_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// Invalidf reports rejected caller input.
func Invalidf(format string, args ...any) error {
	return &AppError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
