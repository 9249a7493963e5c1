package api

import (
	"errors"
	"net/http"

	"github.com/finbook/finbook-api/internal/api/shared"
	"github.com/finbook/finbook-api/internal/domain"
	"github.com/finbook/finbook-api/internal/service"
	"github.com/finbook/finbook-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes.
// The external contract reports unknown references (missing user, unknown
// card number) as client errors, so "not found" maps to 400 rather than 404.
// Anything unrecognized is a server fault and maps to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var invalidCard *service.InvalidCardNumberError
	if errors.As(err, &invalidCard) {
		return "Invalid card number"
	}

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User does not exist"

	case errors.Is(err, store.ErrCardNotFound):
		return "Credit card not found"

	case errors.Is(err, store.ErrCardNumberExists):
		return "Card number already registered"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and sanitized message and
// writes the response. If userMessage is non-empty it overrides the derived
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
