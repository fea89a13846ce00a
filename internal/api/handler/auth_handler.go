package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/restohub/staff-service/internal/api/metrics"
	"github.com/restohub/staff-service/internal/core/ports"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	service ports.StaffService
	revoker ports.TokenRevoker
}

func NewAuthHandler(service ports.StaffService, revoker ports.TokenRevoker) *AuthHandler {
	return &AuthHandler{service: service, revoker: revoker}
}

// Login handles POST /v1/auth/login.
//
// @Summary      Exchange credentials for a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /v1/auth/logout. The Auth middleware has already
// validated the token; revoking it here makes it unusable for the rest of
// its lifetime.
//
// @Summary      Revoke the current session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  logoutResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, expiresAt, err := ctxToken(c)
	if err != nil {
		return err
	}

	if ttl := time.Until(expiresAt); ttl > 0 {
		if err := h.revoker.Revoke(c.Request().Context(), token, ttl); err != nil {
			return err
		}
		metrics.TokenRevocationsTotal.Inc()
	}

	return c.JSON(http.StatusOK, logoutResponse{Message: "logged out"})
}
