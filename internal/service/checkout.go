package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/mailer"
	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/internal/transport"
	"github.com/atelierlane/storefront/pkg/logging"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s\-()+]{4,30}$`)
)

const (
	maxItems       = 100
	maxProductID   = 36
	maxQuantity    = 1000
	maxItemPrice   = 1_000_000
	maxOrderAmount = 10_000_000
)

const freeOrderTag = "[FREE ORDER] "

type CheckoutService struct {
	Repo        *repo.GormRepo
	Mail        Mailer
	Events      Publisher
	Fulfillment *FulfillmentService
	AdminEmail  string
	SiteURL     string
}

// SubmitGuestOrder validates and stores a guest checkout, then fires the
// follow-up side effects. Side effects are best-effort: a failure after the
// order row exists is logged and absorbed, never rolled back.
func (s *CheckoutService) SubmitGuestOrder(ctx context.Context, req transport.GuestCheckoutRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("op", "checkout.guest")

	req = sanitizeCheckout(req)
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	userID, registered := s.resolveIdentity(ctx, req.CustomerEmail)

	free := req.TotalAmount == 0 || req.FreeOrder
	status := models.StatusPending
	instructions := req.SpecialInstructions
	if free {
		status = models.StatusAccepted
		instructions = freeOrderTag + instructions
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCashOnDelivery
	}

	order := &models.Order{
		UserID:          userID,
		TotalAmount:     req.TotalAmount,
		Status:          status,
		PaymentMethod:   paymentMethod,
		CustomerName:    req.CustomerName,
		ShippingAddress: req.ShippingAddress,
		Notes:           buildNotes(registered, req, instructions),
	}
	for _, item := range req.Items {
		productID, _ := uuid.Parse(item.ProductID)
		order.Items = append(order.Items, models.OrderItem{
			ProductID:       productID,
			Quantity:        uint(item.Quantity),
			PriceAtPurchase: item.Price,
		})
	}

	if _, err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	ref := models.ShortReference(order.ID)
	l = l.With("order_id", order.ID, "reference", ref)

	if err := s.Repo.AppendTimeline(ctx, &models.TimelineEntry{
		OrderID: order.ID,
		Status:  status,
		Message: "Order placed",
	}); err != nil {
		l.Error("timeline_append_failed", "error", err)
	}

	s.sendConfirmation(ctx, l, order, ref)

	if s.AdminEmail != "" && s.Mail != nil {
		if _, err := s.Mail.Send(ctx, []string{s.AdminEmail},
			mailer.AdminOrderSubject(ref),
			mailer.AdminOrderHTML(ref, order.CustomerName, order.PaymentMethod, order.TotalAmount, order.Notes)); err != nil {
			l.Error("admin_notification_failed", "error", err)
		}
	}

	if s.Events != nil {
		if err := s.Events.PublishEvent(ctx, order.ID.String(), map[string]any{
			"type":           "order_created",
			"order_id":       order.ID.String(),
			"reference":      ref,
			"total_amount":   order.TotalAmount,
			"payment_method": order.PaymentMethod,
			"guest":          !registered,
		}); err != nil {
			l.Error("order_event_failed", "error", err)
		}
	}

	if s.Fulfillment != nil && (paymentMethod == models.PaymentOnline || free) {
		if _, err := s.Fulfillment.Process(ctx, order.ID, true); err != nil {
			l.Error("fulfillment_failed", "error", err)
		}
	}

	return order, nil
}

// resolveIdentity attributes the order to an existing account when the email
// already has one. Otherwise a fresh identifier is minted for the user_id
// column only; it is not an account and cannot log in.
func (s *CheckoutService) resolveIdentity(ctx context.Context, email string) (uuid.UUID, bool) {
	profile, err := s.Repo.ProfileByEmail(ctx, email)
	if err == nil {
		return profile.ID, true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.FromContext(ctx).Error("profile_lookup_failed", "error", err)
	}
	return uuid.New(), false
}

func (s *CheckoutService) sendConfirmation(ctx context.Context, l *slog.Logger, order *models.Order, ref string) {
	if s.Mail == nil {
		return
	}

	var bankDetails map[string]string
	if order.PaymentMethod == models.PaymentBankTransfer {
		settings, err := s.Repo.PaymentSettings(ctx)
		if err != nil {
			l.Error("payment_settings_failed", "error", err)
		} else {
			bankDetails = settings
		}
	}

	trackURL := ""
	if s.SiteURL != "" {
		trackURL = s.SiteURL + "/track-order"
	}

	email := emailFromNotes(order.Notes)
	if email == "" {
		return
	}
	if _, err := s.Mail.Send(ctx, []string{email},
		mailer.OrderConfirmationSubject(ref),
		mailer.OrderConfirmationHTML(order.CustomerName, ref, order.PaymentMethod, order.TotalAmount, trackURL, bankDetails)); err != nil {
		l.Error("confirmation_email_failed", "error", err)
	}
}

func buildNotes(registered bool, req transport.GuestCheckoutRequest, instructions string) string {
	kind := "Guest order"
	if registered {
		kind = "Registered user order"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s | Email: %s | Phone: %s", kind, req.CustomerEmail, req.CustomerPhone)
	if req.PreferredDeliveryDate != "" {
		fmt.Fprintf(&b, " | Preferred delivery: %s", req.PreferredDeliveryDate)
	}
	if instructions != "" {
		fmt.Fprintf(&b, " | Instructions: %s", instructions)
	}
	return b.String()
}

func validateCheckout(req transport.GuestCheckoutRequest) error {
	if len(req.CustomerName) < 2 {
		return fmt.Errorf("%w: customer_name must be at least 2 characters", ErrValidation)
	}
	if len(req.CustomerEmail) > 254 || !emailRe.MatchString(req.CustomerEmail) {
		return fmt.Errorf("%w: customer_email is invalid", ErrValidation)
	}
	if !phoneRe.MatchString(req.CustomerPhone) {
		return fmt.Errorf("%w: customer_phone is invalid", ErrValidation)
	}
	if len(strings.TrimSpace(req.ShippingAddress)) < 3 {
		return fmt.Errorf("%w: shipping_address must be at least 3 characters", ErrValidation)
	}
	if len(req.Items) == 0 || len(req.Items) > maxItems {
		return fmt.Errorf("%w: items must contain between 1 and %d entries", ErrValidation, maxItems)
	}
	for i, item := range req.Items {
		if item.ProductID == "" || len(item.ProductID) > maxProductID {
			return fmt.Errorf("%w: items[%d].product_id is invalid", ErrValidation, i)
		}
		if _, err := uuid.Parse(item.ProductID); err != nil {
			return fmt.Errorf("%w: items[%d].product_id is invalid", ErrValidation, i)
		}
		if item.Quantity < 1 || item.Quantity > maxQuantity {
			return fmt.Errorf("%w: items[%d].quantity must be between 1 and %d", ErrValidation, i, maxQuantity)
		}
		if item.Price < 0 || item.Price > maxItemPrice {
			return fmt.Errorf("%w: items[%d].price must be between 0 and %d", ErrValidation, i, maxItemPrice)
		}
	}
	if req.TotalAmount < 0 || req.TotalAmount > maxOrderAmount {
		return fmt.Errorf("%w: total_amount must be between 0 and %d", ErrValidation, maxOrderAmount)
	}
	return nil
}
