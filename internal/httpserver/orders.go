package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/atelierlane/storefront/internal/metrics"
	"github.com/atelierlane/storefront/internal/ratelimit"
	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/transport"
	"github.com/atelierlane/storefront/pkg/logging"
)

type OrderHTTP struct {
	Tracking    *service.TrackingService
	Fulfillment *service.FulfillmentService
	Status      *service.OrderStatusService
	Notify      *service.NotificationService
	Limiter     ratelimit.Limiter
}

func (h *OrderHTTP) TrackOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.track")

	if h.Limiter != nil {
		allowed, err := h.Limiter.Allow(ctx, c.RealIP())
		if err != nil {
			l.Error("rate_limit_error", "error", err)
		} else if !allowed {
			l.Warn("track_order_rate_limited", "status", 429, "ip", c.RealIP())
			return errJSON(c, http.StatusTooManyRequests, "too many requests, try again later")
		}
	}

	var req transport.TrackOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("track_order_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	order, timeline, err := h.Tracking.Track(ctx, req.OrderReference, req.Email)
	if err != nil {
		l.Warn("track_order_error", "error", err)
		return serviceError(c, err)
	}

	l.Info("track_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, transport.TrackOrderResponse{
		Success:  true,
		Order:    order,
		Timeline: timeline,
	})
}

func (h *OrderHTTP) ProcessDigitalOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.process_digital")

	var req transport.ProcessDigitalRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("process_digital_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		l.Warn("process_digital_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "order_id is invalid")
	}

	result, err := h.Fulfillment.Process(ctx, orderID, req.PaymentConfirmed)
	if err != nil {
		l.Error("process_digital_error", "error", err)
		metrics.RecordOrderOperation("fulfill", false)
		return serviceError(c, err)
	}

	metrics.RecordOrderOperation("fulfill", true)
	l.Info("process_digital_success", "order_id", orderID, "status", result.Status)
	return c.JSON(http.StatusOK, result)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "order id is invalid")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	order, err := h.Status.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		l.Warn("update_status_error", "error", err)
		metrics.RecordOrderOperation("update_status", false)
		return serviceError(c, err)
	}

	metrics.RecordOrderOperation("update_status", true)
	l.Info("update_status_success", "order_id", orderID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) SubscriptionEvent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.subscription_event")

	var req transport.SubscriptionEventRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "user_id is invalid")
	}

	n, err := h.Notify.SubscriptionEvent(ctx, userID, req.Event)
	if err != nil {
		l.Warn("subscription_event_error", "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}
