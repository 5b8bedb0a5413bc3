package clock

import "time"

// Clocker abstracts the time source so business logic can be tested with a
// deterministic clock.
type Clocker interface {
	Now() time.Time
}

// UTCClocker is the production clock. It always returns UTC so stored
// timestamps and expiry arithmetic never depend on the host timezone.
type UTCClocker struct{}

// New returns the production UTC clock.
func New() UTCClocker {
	return UTCClocker{}
}

// Now returns the current time in UTC.
func (UTCClocker) Now() time.Time {
	return time.Now().UTC()
}
