// Package notify delivers event notifications to house members.
//
// Delivery is best-effort by contract: settlement operations dispatch
// notifications asynchronously and a failed send never fails the
// operation that triggered it.
package notify

import (
	"context"
	"log/slog"
)

// Notification is one "tell user X about event Y" request.
type Notification struct {
	// RecipientID is the user to notify.
	RecipientID string

	// Subject is a short event title.
	Subject string

	// Body is the human-readable summary.
	Body string
}

// Notifier delivers notifications. Implementations must not block the
// caller beyond the send itself; retry policy belongs to callers.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the structured log. It is the
// default sink and the one used in tests.
type LogNotifier struct{}

// Notify logs the notification and always succeeds.
func (LogNotifier) Notify(_ context.Context, n Notification) error {
	slog.Info("notification",
		"recipient", n.RecipientID,
		"subject", n.Subject,
		"body", n.Body,
	)
	return nil
}
