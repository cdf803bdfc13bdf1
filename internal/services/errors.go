package services

import (
	"errors"

	"aoa/internal/store"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = store.ErrNotFound
	ErrForbidden = errors.New("forbidden")
)

// ValidationError is returned before any store or blob call is made. Its
// message is meant to be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// validID guards uuid columns; a malformed id can only be a missing row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
