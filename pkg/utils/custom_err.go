package utils

import (
	"errors"
	"fmt"
)

// Error kinds. HandleServiceError maps each kind to an HTTP status.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
	ErrInternal   = errors.New("internal error")
)

// AppError carries a client-safe message together with its kind.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message}
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

func AuthError(message string) *AppError {
	return &AppError{Kind: ErrAuth, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func UpstreamError(message string, cause error) *AppError {
	return &AppError{Kind: ErrUpstream, Message: message, Cause: cause}
}

func InternalError(message string, cause error) *AppError {
	return &AppError{Kind: ErrInternal, Message: message, Cause: cause}
}
