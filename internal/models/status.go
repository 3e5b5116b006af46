package models

const (
	StatusPending     = "pending"
	StatusAccepted    = "accepted"
	StatusInProgress  = "in_progress"
	StatusPreviewSent = "preview_sent"
	StatusShipped     = "shipped"
	StatusDelivered   = "delivered"
	StatusCancelled   = "cancelled"
)

// Older rows and clients still carry these.
var statusAliases = map[string]string{
	"confirmed":  StatusAccepted,
	"processing": StatusInProgress,
}

var validStatuses = map[string]struct{}{
	StatusPending:     {},
	StatusAccepted:    {},
	StatusInProgress:  {},
	StatusPreviewSent: {},
	StatusShipped:     {},
	StatusDelivered:   {},
	StatusCancelled:   {},
}

func NormalizeStatus(s string) string {
	if mapped, ok := statusAliases[s]; ok {
		return mapped
	}
	return s
}

func ValidStatus(s string) bool {
	_, ok := validStatuses[NormalizeStatus(s)]
	return ok
}
