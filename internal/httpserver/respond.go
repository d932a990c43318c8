package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planventure/planventure-api/internal/service"
	"github.com/planventure/planventure-api/internal/tokens"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps service sentinels onto the stable error taxonomy.
// Anything unrecognized is reported opaquely; internals never reach the
// response body.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorBody{Code: "validation_error", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidResetToken):
		return c.JSON(http.StatusBadRequest, errorBody{
			Code:    "invalid_token",
			Message: "Password reset link has expired or is invalid. Please request a new one.",
		})
	case errors.Is(err, tokens.ErrMissing):
		return c.JSON(http.StatusUnauthorized, errorBody{Code: "missing_token", Message: "authorization token missing"})
	case errors.Is(err, tokens.ErrExpired):
		return c.JSON(http.StatusUnauthorized, errorBody{Code: "token_expired", Message: "token expired"})
	case errors.Is(err, tokens.ErrMalformed), errors.Is(err, service.ErrInvalidRefreshToken):
		return c.JSON(http.StatusUnauthorized, errorBody{Code: "invalid_token", Message: "token invalid"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorBody{Code: "invalid_credentials", Message: "invalid email or password"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Code: "not_found", Message: "resource not found"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorBody{Code: "conflict", Message: "resource already exists"})
	case errors.Is(err, service.ErrSearchUnavailable):
		return c.JSON(http.StatusServiceUnavailable, errorBody{Code: "search_unavailable", Message: "search is not configured"})
	default:
		return c.JSON(http.StatusInternalServerError, errorBody{Code: "internal_error", Message: "internal server error"})
	}
}
