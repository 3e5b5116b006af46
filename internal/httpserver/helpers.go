package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/transport"
)

func getUserID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return userID, nil
}

func errJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, transport.ErrorResponse{Success: false, Error: msg})
}

// serviceError maps service sentinels onto status codes; anything unknown is a
// 500 with a generic body.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return errJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrNotFound):
		return errJSON(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		return errJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrExpired):
		return errJSON(c, http.StatusGone, "expired")
	case errors.Is(err, service.ErrLimit):
		return errJSON(c, http.StatusTooManyRequests, "too many requests")
	default:
		return errJSON(c, http.StatusInternalServerError, "internal error")
	}
}
