package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/pkg/mail"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

const tempPasswordEmailBody = `Hi %s,

An account has been created for you. Sign in with this temporary password:

    %s

You will be asked to choose a new password on first login.
`

// ConsumeTempPassword emails the temporary password to a newly created
// user. The password must not appear in any log line.
func (s *Usecase) ConsumeTempPassword(ctx context.Context, ev event.TempPassword) error {
	ctx, span := s.startSpan(ctx, "ConsumeTempPassword")
	defer span.End()

	greeting := ev.FirstName
	if greeting == "" {
		greeting = "there"
	}

	payload := mail.Payload{
		To:      []string{ev.Email},
		Subject: "Your account details",
		Body:    fmt.Sprintf(tempPasswordEmailBody, greeting, ev.Password),
	}

	if err := s.repoEmail.Send(ctx, payload); err != nil {
		slog.ErrorContext(ctx, "failed to send temp password email", "error", err, "user_id", ev.UserID)

		return err
	}

	slog.InfoContext(ctx, "temp password email sent", "user_id", ev.UserID)

	return nil
}
