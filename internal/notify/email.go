package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/housetab/housetab/internal/storage"
)

// EmailNotifier delivers notifications over SMTP, resolving the
// recipient's address through the user store.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	users  storage.UserStore
}

// NewEmailNotifier creates an SMTP-backed notifier.
func NewEmailNotifier(host string, port int, username, password, from string, users storage.UserStore) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		users:  users,
	}
}

// Notify sends the notification as an email to the recipient's
// registered address.
func (e *EmailNotifier) Notify(ctx context.Context, n Notification) error {
	user, err := e.users.GetUserByID(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipient: %w", err)
	}
	if user == nil {
		return fmt.Errorf("unknown recipient: %s", n.RecipientID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", n.Body)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
