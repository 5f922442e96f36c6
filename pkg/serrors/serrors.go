package serrors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a structured error with a stable machine-readable code.
type Base struct {
	Code    string
	Message string
}

func (e *Base) Error() string {
	return e.Message
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

// Taxonomy of the scheduling/inventory core. Callers classify with errors.Is
// and wrap with context via fmt.Errorf("%w: ...", err).
var (
	// ErrNotAuthenticated is returned when no acting identity is present.
	ErrNotAuthenticated = NewError("NOT_AUTHENTICATED", "no acting identity")
	// ErrAccessDenied is returned when an identity is present but carries no
	// qualifying membership for the requested capability.
	ErrAccessDenied = NewError("ACCESS_DENIED", "access denied")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = NewError("NOT_FOUND", "not found")
	// ErrValidation is returned for malformed input.
	ErrValidation = NewError("VALIDATION_ERROR", "validation error")
	// ErrWriteConflict is returned on an optimistic-concurrency version
	// mismatch. Retryable: re-fetch and re-submit.
	ErrWriteConflict = NewError("WRITE_CONFLICT", "write conflict")
	// ErrConflictDetected is returned when an equipment double-booking is
	// discovered at commit time. Surfaced to the caller, never auto-resolved.
	ErrConflictDetected = NewError("CONFLICT_DETECTED", "equipment conflict detected")
)

// CodeOf returns the taxonomy code of err, or "INTERNAL" for untyped errors.
func CodeOf(err error) string {
	var base *Base
	if errors.As(err, &base) {
		return base.Code
	}
	return "INTERNAL"
}

// ValidationErrors maps field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v))
}

// ProcessValidatorErrors flattens go-playground validator errors into a
// field -> message map.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fieldErr := range errs {
		out[fieldErr.Field()] = fmt.Sprintf("failed on the %q rule", fieldErr.Tag())
	}
	return out
}
