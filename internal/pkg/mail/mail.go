package mail

import "context"

// Payload is a single outgoing email.
type Payload struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// Mail sends email. Implementations must be safe for concurrent use.
type Mail interface {
	Send(ctx context.Context, p Payload) error
}
