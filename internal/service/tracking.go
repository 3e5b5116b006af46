package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
)

var referenceRe = regexp.MustCompile(`^[A-Za-z0-9]{1,36}$`)

type TrackingService struct {
	Repo *repo.GormRepo
}

// Track finds a guest order by partial reference and email. Guest matches
// require the email to appear in the order's notes; when no guest order
// matches, the lookup falls back to the account owning that email and its own
// orders.
func (s *TrackingService) Track(ctx context.Context, reference, email string) (*models.Order, []models.TimelineEntry, error) {
	reference = strings.TrimSpace(reference)
	email = strings.TrimSpace(email)

	if !referenceRe.MatchString(reference) {
		return nil, nil, fmt.Errorf("%w: order_reference is invalid", ErrValidation)
	}
	if email == "" || !emailRe.MatchString(email) {
		return nil, nil, fmt.Errorf("%w: email is invalid", ErrValidation)
	}

	ref := strings.ToUpper(reference)

	guestOrders, err := s.Repo.OrdersWithNotesContaining(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	for i := range guestOrders {
		if matchReference(guestOrders[i].ID, ref) {
			return s.withTimeline(ctx, &guestOrders[i])
		}
	}

	profile, err := s.Repo.ProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, nil, err
	}

	own, err := s.Repo.ListOrders(ctx, profile.ID, 100, 0)
	if err != nil {
		return nil, nil, err
	}
	for i := range own {
		if matchReference(own[i].ID, ref) {
			return s.withTimeline(ctx, &own[i])
		}
	}

	return nil, nil, fmt.Errorf("%w: order", ErrNotFound)
}

func (s *TrackingService) withTimeline(ctx context.Context, order *models.Order) (*models.Order, []models.TimelineEntry, error) {
	timeline, err := s.Repo.GetTimeline(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, timeline, nil
}

// matchReference accepts partial references: the hyphen-stripped, uppercased
// order id matches when the reference equals or prefixes its first or last 8
// characters, or appears anywhere as a substring.
func matchReference(id uuid.UUID, ref string) bool {
	clean := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	first8 := clean[:8]
	last8 := clean[len(clean)-8:]

	return strings.HasPrefix(first8, ref) ||
		strings.HasPrefix(last8, ref) ||
		strings.Contains(clean, ref)
}
