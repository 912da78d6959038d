package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both missing records and records hidden from the caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when an authenticated user acts on something they don't own.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated is returned when an anonymous principal tries to mutate.
	ErrUnauthenticated = errors.New("authentication required")

	ErrInvalidCategory = errors.New("category does not exist or is not published")
	ErrInvalidLocation = errors.New("location does not exist or is not published")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr) || errors.Is(err, ErrInvalidCategory) || errors.Is(err, ErrInvalidLocation)
}
