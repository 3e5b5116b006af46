package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/pkg/logging"
)

type subscriptionNotice struct {
	Title    string
	Message  string
	Severity string
}

var subscriptionNotices = map[string]subscriptionNotice{
	"activated": {
		Title:    "Subscription activated",
		Message:  "Your subscription is now active. Welcome aboard!",
		Severity: "success",
	},
	"renewed": {
		Title:    "Subscription renewed",
		Message:  "Your subscription was renewed for another period.",
		Severity: "success",
	},
	"expiring_soon": {
		Title:    "Subscription expiring soon",
		Message:  "Your subscription expires in a few days. Renew to keep access.",
		Severity: "warning",
	},
	"expired": {
		Title:    "Subscription expired",
		Message:  "Your subscription has expired. Renew to restore access.",
		Severity: "error",
	},
	"payment_reminder": {
		Title:    "Payment reminder",
		Message:  "A payment for your subscription is due.",
		Severity: "warning",
	},
}

type NotificationService struct {
	Repo *repo.GormRepo
	Mail Mailer
}

// SubscriptionEvent records an in-app notification for a subscription
// lifecycle event and mails the account, best-effort.
func (s *NotificationService) SubscriptionEvent(ctx context.Context, userID uuid.UUID, event string) (*models.Notification, error) {
	l := logging.FromContext(ctx).With("op", "notify.subscription", "user_id", userID)

	notice, ok := subscriptionNotices[event]
	if !ok {
		return nil, fmt.Errorf("%w: unknown subscription event %q", ErrValidation, event)
	}

	n := &models.Notification{
		UserID:   userID,
		Type:     "subscription_" + event,
		Title:    notice.Title,
		Message:  notice.Message,
		Severity: notice.Severity,
	}
	if err := s.Repo.InsertNotification(ctx, n); err != nil {
		return nil, err
	}

	if s.Mail != nil {
		if profile, err := s.Repo.ProfileByID(ctx, userID); err == nil {
			html := fmt.Sprintf("<h2>%s</h2><p>%s</p>", notice.Title, notice.Message)
			if _, err := s.Mail.Send(ctx, []string{profile.Email}, notice.Title, html); err != nil {
				l.Error("subscription_email_failed", "error", err)
			}
		}
	}

	return n, nil
}
