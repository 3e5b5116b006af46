package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/transport"
)

func validCheckoutRequest(productID uuid.UUID) transport.GuestCheckoutRequest {
	return transport.GuestCheckoutRequest{
		CustomerName:    "Pat Doe",
		CustomerEmail:   "pat@example.com",
		CustomerPhone:   "+31 6 1234 5678",
		ShippingAddress: "Keizersgracht 1, Amsterdam",
		PaymentMethod:   models.PaymentBankTransfer,
		TotalAmount:     60,
		Items: []transport.CheckoutItem{
			{ProductID: productID.String(), Quantity: 1, Price: 60},
		},
	}
}

func TestCheckoutService_SubmitGuestOrder_CreatesOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)

	order, err := svc.SubmitGuestOrder(ctx, validCheckoutRequest(product.ID))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentBankTransfer, order.PaymentMethod)
	assert.True(t, strings.HasPrefix(order.Notes, "Guest order | Email: pat@example.com | Phone: "), order.Notes)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)

	timeline, err := r.GetTimeline(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, "Order placed", timeline[0].Message)
	assert.Equal(t, models.StatusPending, timeline[0].Status)
}

func TestCheckoutService_SubmitGuestOrder_DefaultsPaymentMethod(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)
	req := validCheckoutRequest(product.ID)
	req.PaymentMethod = ""

	order, err := svc.SubmitGuestOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCashOnDelivery, order.PaymentMethod)
}

func TestCheckoutService_SubmitGuestOrder_FreeOrderAccepted(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}

	product := createProduct(t, r, "sample pack", models.ProductTypeDigital, "samples/pack.zip", 0)
	req := validCheckoutRequest(product.ID)
	req.TotalAmount = 0
	req.Items[0].Price = 0
	req.SpecialInstructions = "ring twice"

	order, err := svc.SubmitGuestOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, order.Status)
	assert.Contains(t, order.Notes, "Instructions: [FREE ORDER] ring twice")
}

func TestCheckoutService_SubmitGuestOrder_AttributesRegisteredEmail(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	profile := &models.Profile{Email: "member@example.com", PasswordHash: "x"}
	require.NoError(t, r.CreateProfile(ctx, profile))

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)
	req := validCheckoutRequest(product.ID)
	req.CustomerEmail = "member@example.com"

	order, err := svc.SubmitGuestOrder(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, order.UserID)
	assert.True(t, strings.HasPrefix(order.Notes, "Registered user order"), order.Notes)
}

func TestCheckoutService_SubmitGuestOrder_SanitizesFields(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)
	req := validCheckoutRequest(product.ID)
	req.CustomerName = "Pat <script>alert(1)</script> Doe"

	order, err := svc.SubmitGuestOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Pat scriptalert(1)/script Doe", order.CustomerName)
}

func TestCheckoutService_SubmitGuestOrder_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	product := createProduct(t, r, "brand kit", models.ProductTypeDigital, "kits/brand.zip", 60)

	tests := []struct {
		name   string
		mutate func(*transport.GuestCheckoutRequest)
	}{
		{name: "short name", mutate: func(r *transport.GuestCheckoutRequest) { r.CustomerName = "P" }},
		{name: "bad email", mutate: func(r *transport.GuestCheckoutRequest) { r.CustomerEmail = "not-an-email" }},
		{name: "bad phone", mutate: func(r *transport.GuestCheckoutRequest) { r.CustomerPhone = "abc" }},
		{name: "short address", mutate: func(r *transport.GuestCheckoutRequest) { r.ShippingAddress = "NL" }},
		{name: "no items", mutate: func(r *transport.GuestCheckoutRequest) { r.Items = nil }},
		{name: "zero quantity", mutate: func(r *transport.GuestCheckoutRequest) { r.Items[0].Quantity = 0 }},
		{name: "oversized quantity", mutate: func(r *transport.GuestCheckoutRequest) { r.Items[0].Quantity = 1001 }},
		{name: "negative price", mutate: func(r *transport.GuestCheckoutRequest) { r.Items[0].Price = -1 }},
		{name: "malformed product id", mutate: func(r *transport.GuestCheckoutRequest) { r.Items[0].ProductID = "not-a-uuid" }},
		{name: "negative total", mutate: func(r *transport.GuestCheckoutRequest) { r.TotalAmount = -5 }},
		{name: "excessive total", mutate: func(r *transport.GuestCheckoutRequest) { r.TotalAmount = 20_000_000 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckoutRequest(product.ID)
			tt.mutate(&req)

			_, err := svc.SubmitGuestOrder(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	var count int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEmailFromNotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		notes string
		want  string
	}{
		{
			name:  "guest notes",
			notes: "Guest order | Email: pat@example.com | Phone: 12345",
			want:  "pat@example.com",
		},
		{
			name:  "email at end",
			notes: "Registered user order | Email: member@example.com",
			want:  "member@example.com",
		},
		{
			name:  "no marker",
			notes: "handwritten note",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, emailFromNotes(tt.notes))
		})
	}
}

func TestSanitizeField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scriptxss/script", sanitizeField("<script>xss</script>"))
	assert.Equal(t, "trimmed", sanitizeField("  trimmed  "))

	long := strings.Repeat("a", 600)
	assert.Len(t, sanitizeField(long), 500)
}
