package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/mailer"
	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/pkg/logging"
)

type OrderStatusService struct {
	Repo   *repo.GormRepo
	Mail   Mailer
	Events Publisher
}

// UpdateStatus moves an order to a new status, appends the timeline entry and
// fires the customer notification. Legacy aliases (confirmed, processing) are
// normalized before anything is written.
func (s *OrderStatusService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("op", "order.status", "order_id", orderID)

	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	status = models.NormalizeStatus(status)

	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		return order, nil
	}

	if _, err := s.Repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	if err := s.Repo.AppendTimeline(ctx, &models.TimelineEntry{
		OrderID: orderID,
		Status:  status,
		Message: "Status updated",
	}); err != nil {
		l.Error("timeline_append_failed", "error", err)
	}

	s.notifyCustomer(ctx, order, l)

	if s.Events != nil {
		if err := s.Events.PublishEvent(ctx, orderID.String(), map[string]any{
			"type":     "status_changed",
			"order_id": orderID.String(),
			"status":   status,
		}); err != nil {
			l.Error("status_event_failed", "error", err)
		}
	}

	return order, nil
}

func (s *OrderStatusService) notifyCustomer(ctx context.Context, order *models.Order, l *slog.Logger) {
	if s.Mail == nil {
		return
	}
	email := customerEmail(ctx, s.Repo, order)
	if email == "" {
		return
	}

	var bankDetails map[string]string
	if order.PaymentMethod == models.PaymentBankTransfer && order.Status == models.StatusAccepted {
		settings, err := s.Repo.PaymentSettings(ctx)
		if err != nil {
			l.Error("payment_settings_failed", "error", err)
		} else {
			bankDetails = settings
		}
	}

	ref := models.ShortReference(order.ID)
	if _, err := s.Mail.Send(ctx, []string{email},
		mailer.StatusUpdateSubject(ref, order.Status),
		mailer.StatusUpdateHTML(order.CustomerName, ref, order.Status, bankDetails)); err != nil {
		l.Error("status_email_failed", "error", err)
	}
}
