package httpapi

import (
	"errors"
	"net/http"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

// StatusOf maps the service error taxonomy to HTTP status codes. Untyped
// errors map to 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, serrors.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, serrors.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrWriteConflict), errors.Is(err, serrors.ErrConflictDetected):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondError writes err as a JSON error envelope with the mapped status.
// Internal error details are not echoed to the client.
func RespondError(w http.ResponseWriter, err error) error {
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	var meta map[string]string
	var fieldErrs serrors.ValidationErrors
	if errors.As(err, &fieldErrs) {
		meta = fieldErrs
	}
	return WriteError(w, status, serrors.CodeOf(err), message, meta)
}
