package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelierlane/storefront/internal/metrics"
	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/transport"
	"github.com/atelierlane/storefront/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) GuestCheckout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.guest")

	var req transport.GuestCheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("guest_checkout_error", "status", 400, "error", err)
		metrics.RecordOrderOperation("create", false)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SubmitGuestOrder(ctx, req)
	if err != nil {
		l.Warn("guest_checkout_error", "error", err)
		metrics.RecordOrderOperation("create", false)
		return serviceError(c, err)
	}

	metrics.RecordOrderOperation("create", true)
	l.Info("guest_checkout_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, transport.GuestCheckoutResponse{
		Success: true,
		OrderID: order.ID.String(),
		Message: "Order placed successfully",
	})
}
