package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/transport"
	"github.com/atelierlane/storefront/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	profile, err := h.Svc.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		l.Warn("register_error", "error", err)
		return serviceError(c, err)
	}

	l.Info("register_success", "user_id", profile.ID)
	return c.JSON(http.StatusCreated, profile)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{AccessToken: token})
}
