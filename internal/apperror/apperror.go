// Package apperror defines the domain error taxonomy shared by every layer.
//
// Services return these errors; HTTP handlers translate them to status codes.
// The taxonomy is a small set of sentinel errors plus an AppError wrapper that
// carries a human-readable message. errors.Is/errors.As walk the chain, so a
// service can wrap an AppError with fmt.Errorf("...: %w", err) and the handler
// still classifies it correctly.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("store unavailable")
)

type AppError struct {
	Err     error  // sentinel this error wraps
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// InvalidCredentials reports a failed login attempt. The message is
// deliberately the same whether the email or the password mismatched.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "email or password does not match",
	}
}

// Unavailable reports a failure talking to a remote backing store.
// Handlers map this to 502 Bad Gateway; the user retries by repeating
// the action — there is no automatic retry.
func Unavailable(op string, err error) *AppError {
	return &AppError{
		Err:     ErrUnavailable,
		Message: fmt.Sprintf("store unavailable during %s: %v", op, err),
	}
}
