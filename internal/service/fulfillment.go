package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/mailer"
	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/pkg/logging"
)

const (
	downloadMaxUses = 10
	downloadTTL     = 7 * 24 * time.Hour
)

// StatusAwaitingPayment is reported when the auto-accept gate holds the order
// back; nothing has been mutated in that case.
const StatusAwaitingPayment = "awaiting_payment_confirmation"

type FulfillmentService struct {
	Repo    *repo.GormRepo
	Mail    Mailer
	Events  Publisher
	SiteURL string
	Now     func() time.Time
}

type FulfillmentResult struct {
	Success       bool     `json:"success"`
	IsDigitalOnly bool     `json:"is_digital_only"`
	AutoAccepted  bool     `json:"auto_accepted"`
	Status        string   `json:"status"`
	DownloadLinks []string `json:"download_links"`
}

// Process runs the digital fulfillment pipeline for one order. It always
// reports Success=true once the order exists; callers must inspect
// IsDigitalOnly and AutoAccepted rather than assuming a no-op is a failure.
func (s *FulfillmentService) Process(ctx context.Context, orderID uuid.UUID, paymentConfirmed bool) (*FulfillmentResult, error) {
	l := logging.FromContext(ctx).With("op", "fulfillment", "order_id", orderID)

	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	result := &FulfillmentResult{Success: true, Status: order.Status}

	// Physical or mixed orders always go through manual processing.
	for _, item := range order.Items {
		if item.Product == nil || item.Product.ProductType != models.ProductTypeDigital {
			return result, nil
		}
	}
	result.IsDigitalOnly = true

	free := order.TotalAmount == 0
	target := models.StatusAccepted
	if free {
		target = models.StatusDelivered
	}

	if !paymentConfirmed && order.PaymentMethod != models.PaymentOnline && !free {
		result.Status = StatusAwaitingPayment
		return result, nil
	}

	// Only a pending order moves; any other current status makes the
	// re-invocation a no-op.
	moved, err := s.Repo.TransitionStatus(ctx, order.ID, models.StatusPending, target)
	if err != nil {
		return nil, err
	}
	if moved {
		result.AutoAccepted = true
		result.Status = target
		if err := s.Repo.AppendTimeline(ctx, &models.TimelineEntry{
			OrderID: order.ID,
			Status:  target,
			Message: "Digital order processed automatically",
		}); err != nil {
			l.Error("timeline_append_failed", "error", err)
		}
	}
	if order.Status == target {
		result.Status = target
	}

	links := s.mintDownloads(ctx, order, l)
	for _, link := range links {
		result.DownloadLinks = append(result.DownloadLinks, link.URL)
	}

	if len(links) > 0 {
		s.sendDownloadEmails(ctx, order, links, l)
	}

	if s.Events != nil {
		if err := s.Events.PublishEvent(ctx, order.ID.String(), map[string]any{
			"type":     "digital_fulfilled",
			"order_id": order.ID.String(),
			"status":   result.Status,
			"links":    len(links),
		}); err != nil {
			l.Error("fulfillment_event_failed", "error", err)
		}
	}

	return result, nil
}

// mintDownloads issues one entitlement per line item that carries a file. A
// failure on one item is logged and skipped; the rest are still minted.
func (s *FulfillmentService) mintDownloads(ctx context.Context, order *models.Order, l *slog.Logger) []mailer.DownloadLink {
	now := s.now()
	var links []mailer.DownloadLink
	for _, item := range order.Items {
		if item.Product == nil || item.Product.FilePath == "" {
			continue
		}
		dl, err := s.Repo.MintDownload(ctx, order.ID, item.ProductID,
			uuid.NewString(), downloadMaxUses, now.Add(downloadTTL))
		if err != nil {
			l.Error("mint_download_failed", "product_id", item.ProductID, "error", err)
			continue
		}
		links = append(links, mailer.DownloadLink{
			ProductName: item.Product.Name,
			URL:         fmt.Sprintf("%s/download?token=%s", s.SiteURL, dl.DownloadToken),
			ExpiresAt:   dl.ExpiresAt,
		})
	}
	return links
}

func (s *FulfillmentService) sendDownloadEmails(ctx context.Context, order *models.Order, links []mailer.DownloadLink, l *slog.Logger) {
	if s.Mail == nil {
		return
	}
	ref := models.ShortReference(order.ID)

	if email := customerEmail(ctx, s.Repo, order); email != "" {
		if _, err := s.Mail.Send(ctx, []string{email},
			mailer.DownloadLinksSubject(ref),
			mailer.DownloadLinksHTML(order.CustomerName, links)); err != nil {
			l.Error("download_email_failed", "error", err)
		}
	}

	admins, err := s.Repo.AdminEmails(ctx)
	if err != nil {
		l.Error("admin_email_lookup_failed", "error", err)
		return
	}
	if len(admins) > 0 {
		if _, err := s.Mail.Send(ctx, admins,
			mailer.DownloadLinksSubject(ref),
			mailer.AdminDownloadsHTML(ref, links)); err != nil {
			l.Error("admin_download_email_failed", "error", err)
		}
	}
}

func (s *FulfillmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
