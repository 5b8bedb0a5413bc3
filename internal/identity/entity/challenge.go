package entity

import "time"

// ChallengeStatus is the lifecycle state of a login challenge.
type ChallengeStatus string

const (
	// ChallengePending means the code has been issued and not yet used.
	ChallengePending ChallengeStatus = "pending"
	// ChallengeConsumed means the code was verified successfully.
	ChallengeConsumed ChallengeStatus = "consumed"
	// ChallengeExpired means the code aged out before verification.
	ChallengeExpired ChallengeStatus = "expired"
)

// OtpChallenge is one issued login code. Only the bcrypt hash of the code
// is stored; the plaintext leaves the service exactly once, by email.
type OtpChallenge struct {
	ID        int64
	UserID    int64
	CodeHash  string
	Attempts  int
	Status    ChallengeStatus
	CreatedAt time.Time
}

// ExpiresAt returns the instant the challenge stops being valid.
func (c OtpChallenge) ExpiresAt(validity time.Duration) time.Time {
	return c.CreatedAt.Add(validity)
}

// IsExpired reports whether the challenge has aged out at now. A challenge
// exactly at the boundary counts as expired.
func (c OtpChallenge) IsExpired(now time.Time, validity time.Duration) bool {
	return !now.Before(c.ExpiresAt(validity))
}
