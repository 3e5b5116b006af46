package models

import (
	"strings"

	"github.com/google/uuid"
)

// ShortReference derives the human-facing order reference from the order id:
// the first 8 hex characters, uppercased.
func ShortReference(id uuid.UUID) string {
	clean := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return clean[:8]
}
