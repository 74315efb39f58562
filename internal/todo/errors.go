package todo

import (
	"errors"
	"fmt"
)

// Validation failures. They are wrapped in *ValidationError.
var (
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrTitleTooLong       = fmt.Errorf("title must be %d characters or less", MaxTitleLength)
	ErrDescriptionTooLong = fmt.Errorf("description must be %d characters or less", MaxDescriptionLength)
	ErrInvalidPriority    = errors.New("priority must be one of: low, medium, high")
	ErrInvalidStatus      = errors.New("status must be one of: pending, completed")
	ErrInvalidDate        = errors.New("invalid date, use YYYY-MM-DD")
	ErrNoUpdateFields     = errors.New("at least one field must be specified to update")
)

// ValidationError reports a field that violates its constraint.
type ValidationError struct {
	Field string // empty when the failure is not tied to one field
	Value string // offending value, when useful to show
	Err   error  // one of the Err* sentinels
}

func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Value != "" {
		msg = fmt.Sprintf("%s (got %q)", msg, e.Value)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, msg)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a task ID that does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID %d not found", e.ID)
}

// IsNotFound reports whether err contains a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err contains a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
