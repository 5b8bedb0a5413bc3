package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"Email":        "email",
		"FirstName":    "first_name",
		"UserID":       "user_id",
		"OtpID":        "otp_id",
		"HTTPServer":   "http_server",
		"IsActive":     "is_active",
		"already_done": "already_done",
		"RequestedETA": "requested_eta",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
