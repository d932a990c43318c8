package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/planventure/planventure-api/internal/tokens"
)

const userIDKey = "userID"

// RequireLogin guards a route group with bearer-token auth. Missing,
// expired and malformed tokens each produce a distinct error code.
func RequireLogin(accessSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code": "missing_token", "message": "authorization token missing",
				})
			}

			claims, err := tokens.AccessClaimsFromToken(raw, accessSecret)
			if err != nil {
				code := "invalid_token"
				if errors.Is(err, tokens.ErrExpired) {
					code = "token_expired"
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code": code, "message": "token invalid or expired",
				})
			}

			id, err := strconv.ParseUint(claims.Subject, 10, 64)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"code": "invalid_token", "message": "token invalid or expired",
				})
			}

			c.Set(userIDKey, uint(id))
			return next(c)
		}
	}
}

// UserID returns the authenticated subject set by RequireLogin. Routes
// outside the guarded group see the zero value.
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}
