// Package event defines the message contracts shared between publishing
// modules and the notification consumers.
package event

import "time"

// Topic and consumer identity for the OTP issued event.
const (
	OtpIssuedDestination  = "identity.otp.issued"
	OtpIssuedConsumerName = "otp-issued-email"
)

// OtpIssued is published after a login challenge is created. It carries the
// plaintext code because the stored copy is hashed; it must never be logged.
type OtpIssued struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
