package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coderun/account-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Collapses every token-validation failure into one generic 401 so the
//     caller cannot tell a bad signature from an expired token.
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

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidEmailFormat):
		return http.StatusUnprocessableEntity, "Incorrect e-mail form"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusUnprocessableEntity, "Need to secure password"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "Duplicated e-mail"
	case errors.Is(err, domain.ErrIncorrectCredentials):
		return http.StatusUnauthorized, "Incorrect user"
	case errors.Is(err, domain.ErrRouteMismatch):
		return http.StatusBadRequest, "Incorrect route"
	case errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest, "Already verified"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "No content(user)"
	case errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrMissingSubject),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Could not validate credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
