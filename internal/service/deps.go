package service

import "context"

// Mailer sends one HTML email and returns the provider message id. All callers
// in this package treat failures as best-effort: logged, never propagated.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) (string, error)
}

// Publisher emits a domain event. Failures are logged and absorbed.
type Publisher interface {
	PublishEvent(ctx context.Context, key string, event map[string]any) error
}
