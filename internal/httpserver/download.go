package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/pkg/logging"
)

type DownloadHTTP struct {
	Svc *service.DownloadService
}

func htmlError(c echo.Context, code int, title, detail string) error {
	return c.HTML(code, fmt.Sprintf(
		"<!doctype html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p></body></html>",
		title, title, detail))
}

// Redeem turns a download token into a 302 to a signed object URL, or an HTML
// error page matching the failure.
func (h *DownloadHTTP) Redeem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "download.redeem")

	token := c.QueryParam("token")

	url, err := h.Svc.Redeem(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("download_error", "status", 400)
			return htmlError(c, http.StatusBadRequest, "Missing token", "A download token is required.")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("download_error", "status", 404)
			return htmlError(c, http.StatusNotFound, "Not found", "This download link is not valid.")
		case errors.Is(err, service.ErrExpired):
			l.Warn("download_error", "status", 410)
			return htmlError(c, http.StatusGone, "Link expired", "This download link has expired. Contact support for a new one.")
		case errors.Is(err, service.ErrLimit):
			l.Warn("download_error", "status", 429)
			return htmlError(c, http.StatusTooManyRequests, "Download limit reached", "This link has reached its maximum number of downloads.")
		default:
			l.Error("download_error", "status", 500, "error", err)
			return htmlError(c, http.StatusInternalServerError, "Something went wrong", "Please try again later.")
		}
	}

	l.Info("download_redeemed")
	return c.Redirect(http.StatusFound, url)
}
