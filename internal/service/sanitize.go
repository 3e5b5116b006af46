package service

import (
	"strings"

	"github.com/atelierlane/storefront/internal/transport"
)

const maxFieldLength = 500

// sanitizeField strips angle brackets and truncates, so customer input can be
// interpolated into HTML email bodies without further escaping.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	if len(s) > maxFieldLength {
		s = s[:maxFieldLength]
	}
	return strings.TrimSpace(s)
}

func sanitizeCheckout(req transport.GuestCheckoutRequest) transport.GuestCheckoutRequest {
	req.CustomerName = sanitizeField(req.CustomerName)
	req.CustomerEmail = sanitizeField(req.CustomerEmail)
	req.CustomerPhone = sanitizeField(req.CustomerPhone)
	req.ShippingAddress = sanitizeField(req.ShippingAddress)
	req.SpecialInstructions = sanitizeField(req.SpecialInstructions)
	req.PreferredDeliveryDate = sanitizeField(req.PreferredDeliveryDate)
	req.PaymentMethod = sanitizeField(req.PaymentMethod)
	for i := range req.Items {
		req.Items[i].ProductID = sanitizeField(req.Items[i].ProductID)
	}
	return req
}
