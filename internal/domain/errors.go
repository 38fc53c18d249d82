package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidationFailed one or more field/base rules are violated
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotFound entity does not exist or belongs to another owner
	ErrNotFound = errors.New("not found")

	// ErrForbidden actor lacks rights for the action
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition the state machine rejects the transition
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict an overlapping booking already exists for the space
	ErrConflict = errors.New("booking conflicts with an existing booking")

	// ErrOwnershipMismatch pet does not belong to the booking's renter
	ErrOwnershipMismatch = errors.New("pet must belong to the person making the booking")

	// ErrBookingLocked booking is completed or cancelled and cannot be modified
	ErrBookingLocked = errors.New("cannot modify pets of completed or cancelled booking")

	// ErrDuplicatePet pet is already included in the booking
	ErrDuplicatePet = errors.New("pet is already included in this booking")
)

// BaseField is used for rule violations not tied to a single field
const BaseField = "base"

// FieldError a single violated rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every violated rule. It matches ErrValidationFailed via errors.Is.
type ValidationErrors []FieldError

// Add appends a violation
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Merge appends all violations from other
func (v *ValidationErrors) Merge(other ValidationErrors) {
	*v = append(*v, other...)
}

// HasField reports whether a violation was recorded for field
func (v ValidationErrors) HasField(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// HasMessage reports whether any violation message contains substr
func (v ValidationErrors) HasMessage(substr string) bool {
	for _, e := range v {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		if e.Field == BaseField {
			parts = append(parts, e.Message)
			continue
		}
		parts = append(parts, e.Field+" "+e.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// OrNil returns nil when there are no violations
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// AsValidationErrors extracts ValidationErrors from an error chain
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
