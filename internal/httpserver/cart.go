package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/transport"
	"github.com/atelierlane/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := getUserID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := getUserID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		l.Error("add_to_cart_error", "error", err)
		return serviceError(c, err)
	}

	l.Info("cart_item_added", "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := getUserID(c)
	if err != nil {
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateQuantity(ctx, userID, req.ProductID, req.Quantity); err != nil {
		l.Error("update_quantity_error", "error", err)
		return serviceError(c, err)
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := getUserID(c)
	if err != nil {
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.RemoveFromCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.RemoveFromCart(ctx, userID, req.ProductID); err != nil {
		l.Error("remove_from_cart_error", "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := getUserID(c)
	if err != nil {
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "error", err)
		return serviceError(c, err)
	}

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *CartHTTP) MergeCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.merge")

	userID, err := getUserID(c)
	if err != nil {
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.MergeCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("merge_cart_error", "status", 400, "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.Merge(ctx, userID, req.Items)
	if err != nil {
		l.Error("merge_cart_error", "error", err)
		return serviceError(c, err)
	}

	l.Info("cart_merged", "lines", len(req.Items))
	return c.JSON(http.StatusOK, cart)
}
