package response

import (
	"errors"
	"net/http"

	"go-todo-api/internal/domain"
)

// StatusOf maps the domain error taxonomy to HTTP statuses. The ownership
// mismatch is deliberately separate from the generic forbidden case.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner):
		// TODO: return 403 once the web client stops treating the 401 here
		// as a session expiry.
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
