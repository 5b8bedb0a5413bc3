package event

// Topic and consumer identity for the temporary password event.
const (
	TempPasswordDestination  = "identity.user.temp_password"
	TempPasswordConsumerName = "temp-password-email"
)

// TempPassword is published when an administrator creates a user account.
// The plaintext temporary password is delivered by email only.
type TempPassword struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Password  string `json:"password"`
}
