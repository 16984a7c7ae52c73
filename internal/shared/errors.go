package shared

import (
	"errors"
	"fmt"
)

// Kind classifies failures surfaced to callers of the backend.
type Kind string

const (
	KindInvalidCredentials Kind = "InvalidCredentials"
	KindInvalidEmail       Kind = "InvalidEmail"
	KindWeakPassword       Kind = "WeakPassword"
	KindPasswordMismatch   Kind = "PasswordMismatch"
	KindNotFound           Kind = "NotFound"
	KindEmptyField         Kind = "EmptyField"
	KindUnknown            Kind = "Unknown"
)

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidEmail       = fmt.Errorf("invalid email")
	ErrWeakPassword       = fmt.Errorf("weak password")
	ErrPasswordMismatch   = fmt.Errorf("password mismatch")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")

	// Lookup errors
	ErrNotFound        = fmt.Errorf("not found")
	ErrListNotFound    error = notFoundError{entity: "list"}
	ErrProfileNotFound error = notFoundError{entity: "profile"}

	// Input validation errors
	ErrEmptyField      = fmt.Errorf("required field is empty")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing argument")
	ErrUnsupportedSort = fmt.Errorf("unsupported sort")
)

// notFoundError names the missing entity and matches [ErrNotFound].
type notFoundError struct {
	entity string
}

func (e notFoundError) Error() string { return e.entity + " not found" }

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

// FieldError reports a form field that failed validation, carrying the message shown next to it.
type FieldError struct {
	Field   string
	Message string
	Err     error // sentinel the failure matches; [ErrEmptyField] when nil
}

func (e *FieldError) Error() string { return e.Message }

// Unwrap lets [errors.Is] match the underlying sentinel.
func (e *FieldError) Unwrap() error {
	if e.Err == nil {
		return ErrEmptyField
	}
	return e.Err
}

// EmptyField returns a [FieldError] for a required field left blank.
func EmptyField(field, message string) error {
	return &FieldError{Field: field, Message: message, Err: ErrEmptyField}
}

// InvalidField returns a [FieldError] for field that matches sentinel.
func InvalidField(field string, sentinel error, message string) error {
	return &FieldError{Field: field, Message: message, Err: sentinel}
}

// KindOf maps an error to its [Kind]. Errors that wrap none of the sentinels are [KindUnknown].
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrInvalidEmail):
		return KindInvalidEmail
	case errors.Is(err, ErrWeakPassword):
		return KindWeakPassword
	case errors.Is(err, ErrPasswordMismatch):
		return KindPasswordMismatch
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmptyField):
		return KindEmptyField
	default:
		return KindUnknown
	}
}

// Message returns the human readable text shown to a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email address"
	case errors.Is(err, ErrWeakPassword):
		return "Password must be at least 6 characters"
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, ErrListNotFound):
		return "List not found"
	case errors.Is(err, ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrNotAuthenticated):
		return "You must be signed in"
	}
	return err.Error()
}
