package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelierlane/storefront/internal/auth"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	OrderHandler    *OrderHTTP
	DownloadHandler *DownloadHTTP
	ProductHandler  *ProductHTTP
	AuthMW          *auth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/download", d.DownloadHandler.Redeem)

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)

	api.GET("/products", d.ProductHandler.ListProducts)
	api.GET("/products/search", d.ProductHandler.SearchProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)

	api.POST("/checkout/guest", d.CheckoutHandler.GuestCheckout)
	api.POST("/orders/track", d.OrderHandler.TrackOrder)
	api.POST("/orders/process-digital", d.OrderHandler.ProcessDigitalOrder)

	cart := api.Group("/cart")
	cart.Use(d.AuthMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("", d.CartHandler.UpdateQuantity)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/items", d.CartHandler.RemoveFromCart)
	cart.POST("/merge", d.CartHandler.MergeCart)

	admin := api.Group("", d.AuthMW.RequireAdmin)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.POST("/notifications/subscription", d.OrderHandler.SubscriptionEvent)
}
