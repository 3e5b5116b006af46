package service

import (
	"context"
	"strings"

	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
)

// emailFromNotes recovers the customer email embedded in the order's freeform
// notes. Guest orders have no account to resolve the address from.
func emailFromNotes(notes string) string {
	const marker = "Email: "
	i := strings.Index(notes, marker)
	if i < 0 {
		return ""
	}
	rest := notes[i+len(marker):]
	if j := strings.Index(rest, " |"); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

func isGuestOrder(order *models.Order) bool {
	return strings.HasPrefix(order.Notes, "Guest order")
}

func customerEmail(ctx context.Context, r *repo.GormRepo, order *models.Order) string {
	if !isGuestOrder(order) {
		if profile, err := r.ProfileByID(ctx, order.UserID); err == nil {
			return profile.Email
		}
	}
	return emailFromNotes(order.Notes)
}
