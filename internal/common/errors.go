// Package common defines shared sentinel errors used across notevault
// components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// Error couples a sentinel with a human-readable message. The sentinel drives
// transport-level classification (via errors.Is), the message is what the
// client sees.
type Error struct {
	Sentinel error
	Message  string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Sentinel }

// NotFound builds an ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return &Error{Sentinel: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds an ErrConflict with a formatted message.
func Conflict(format string, args ...any) error {
	return &Error{Sentinel: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation builds an ErrValidation with a formatted message.
func Validation(format string, args ...any) error {
	return &Error{Sentinel: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an ErrUnauthorized with a formatted message.
func Unauthorized(format string, args ...any) error {
	return &Error{Sentinel: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}
