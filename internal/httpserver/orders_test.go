package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlane/storefront/internal/ratelimit"
	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/transport"
)

func TestOrderHTTP_TrackOrder_RateLimited(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.NewMemory(10, time.Minute)
	defer limiter.Close()

	h := &OrderHTTP{
		Tracking: &service.TrackingService{Repo: newTestRepo(t)},
		Limiter:  limiter,
	}
	e := echo.New()

	payload := transport.TrackOrderRequest{OrderReference: "ABCD1234", Email: "pat@example.com"}

	for i := 0; i < 10; i++ {
		rec, c := doJSONRequest(t, e, http.MethodPost, "/api/orders/track", payload)
		require.NoError(t, h.TrackOrder(c))
		assert.Equal(t, http.StatusNotFound, rec.Code, "request %d", i+1)
	}

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/orders/track", payload)
	require.NoError(t, h.TrackOrder(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestOrderHTTP_TrackOrder_InvalidReference(t *testing.T) {
	t.Parallel()

	h := &OrderHTTP{Tracking: &service.TrackingService{Repo: newTestRepo(t)}}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/orders/track", transport.TrackOrderRequest{
		OrderReference: "not a reference!",
		Email:          "pat@example.com",
	})
	require.NoError(t, h.TrackOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHTTP_ProcessDigitalOrder_BadOrderID(t *testing.T) {
	t.Parallel()

	h := &OrderHTTP{Fulfillment: &service.FulfillmentService{Repo: newTestRepo(t)}}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/orders/process-digital", transport.ProcessDigitalRequest{
		OrderID: "not-a-uuid",
	})
	require.NoError(t, h.ProcessDigitalOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
