package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ctxToken extracts the raw bearer token and its expiry injected by the
// Auth middleware. Their presence proves the middleware ran; a missing
// value means the route was wired without it.
func ctxToken(c echo.Context) (token string, expiresAt time.Time, err error) {
	token, _ = c.Get("token").(string)
	if token == "" {
		return "", time.Time{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	exp, _ := c.Get("token_exp").(int64)
	if exp == 0 {
		return "", time.Time{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing expiry")
	}

	return token, time.Unix(exp, 0), nil
}
