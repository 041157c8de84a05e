package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/entitydesk/entity-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Malformed input and no-op updates: rejected before (or instead of) any write.
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrNoFieldsToUpdate),
		errors.Is(err, domain.ErrStoredEmailInvalid):
		return http.StatusBadRequest, err.Error()
	}

	// Referenced entity missing.
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, err.Error()
	}

	// Uniqueness invariant violations.
	switch {
	case errors.Is(err, domain.ErrCompanyAssigned),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	}

	if errors.Is(err, domain.ErrInvalidCredentials) {
		return http.StatusUnauthorized, "invalid credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
