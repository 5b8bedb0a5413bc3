// Package email delivers notification mail through the SMTP relay with
// bounded retries.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/chamindaf/lion-svc/internal/pkg/mail"
)

// Email wraps the mail sender with exponential backoff. SMTP relays fail
// transiently often enough that a single attempt loses real mail.
type Email struct {
	mailer  mail.Mail
	retries uint64
}

// New creates the sender. retries is the number of attempts after the
// first; zero defaults to 3.
func New(mailer mail.Mail, retries int) *Email {
	if retries <= 0 {
		retries = 3
	}

	return &Email{mailer: mailer, retries: uint64(retries)}
}

// Send delivers the payload, retrying with jittered backoff.
func (e *Email) Send(ctx context.Context, p mail.Payload) error {
	backoff := retry.WithMaxRetries(e.retries,
		retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := e.mailer.Send(ctx, p); err != nil {
			slog.WarnContext(ctx, "mail delivery attempt failed", "error", err)

			return retry.RetryableError(err)
		}

		return nil
	})
}
