package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusCode(t *testing.T) {
	tests := map[Code]int{
		CodeInternal:       http.StatusInternalServerError,
		CodeInvalidFormat:  http.StatusBadRequest,
		CodeInvalidInput:   http.StatusUnprocessableEntity,
		CodeNotFound:       http.StatusNotFound,
		CodeConflict:       http.StatusConflict,
		CodeUnauthorized:   http.StatusUnauthorized,
		CodeForbidden:      http.StatusForbidden,
		CodeTooManyRequest: http.StatusTooManyRequests,
	}

	for code, want := range tests {
		err := &Error{code: code}

		assert.Equal(t, want, err.StatusCode(), code.String())
	}
}

func TestNewServer(t *testing.T) {
	cause := errors.New("boom")

	err := NewServer(cause)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, TypeServer, ge.Type())
	assert.Equal(t, CodeInternal, ge.Code())
	assert.Equal(t, "Internal server error", ge.Msg())
	assert.ErrorIs(t, err, cause)
}

func TestNewBusiness(t *testing.T) {
	err := NewBusiness("Incorrect OTP", CodeUnauthorized)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, TypeBusiness, ge.Type())
	assert.Equal(t, "Incorrect OTP", ge.Msg())
	assert.Equal(t, http.StatusUnauthorized, ge.StatusCode())
	assert.Equal(t, "Incorrect OTP", ge.Error())
}

func TestNewInvalidInput(t *testing.T) {
	t.Run("key value pairs become field errors", func(t *testing.T) {
		err := NewInvalidInput(nil, "email", "must be a valid email")

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, CodeInvalidInput, ge.Code())
		assert.Equal(t, map[string]string{"email": "must be a valid email"}, ge.Fields())
	})

	t.Run("wrapped error keeps the cause", func(t *testing.T) {
		cause := errors.New("bad input")

		err := NewInvalidInput(cause)

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, ge.Fields())
	})

	t.Run("odd pair count falls back to format error", func(t *testing.T) {
		err := NewInvalidInput(nil, "dangling")

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, CodeInvalidFormat, ge.Code())
	})
}

func TestNewInvalidFormat(t *testing.T) {
	t.Run("default message", func(t *testing.T) {
		err := NewInvalidFormat()

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, "Invalid request body", ge.Msg())
		assert.Equal(t, http.StatusBadRequest, ge.StatusCode())
	})

	t.Run("custom message", func(t *testing.T) {
		err := NewInvalidFormat("request body is required")

		var ge *Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, "request body is required", ge.Msg())
	})
}
