package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/pkg/mail"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

const otpEmailBody = `Hi %s,

Your one-time password is: %s

It expires at %s UTC. If you did not try to sign in, ignore this email.
`

// ConsumeOtpIssued emails the login code to the user. The code must not
// appear in any log line.
func (s *Usecase) ConsumeOtpIssued(ctx context.Context, ev event.OtpIssued) error {
	ctx, span := s.startSpan(ctx, "ConsumeOtpIssued")
	defer span.End()

	greeting := ev.FirstName
	if greeting == "" {
		greeting = "there"
	}

	payload := mail.Payload{
		To:      []string{ev.Email},
		Subject: "Your one-time password",
		Body:    fmt.Sprintf(otpEmailBody, greeting, ev.Code, ev.ExpiresAt.Format("15:04:05")),
	}

	if err := s.repoEmail.Send(ctx, payload); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "error", err, "user_id", ev.UserID)

		return err
	}

	slog.InfoContext(ctx, "otp email sent", "user_id", ev.UserID)

	return nil
}
