package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	type login struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,password"`
	}

	t.Run("valid input passes", func(t *testing.T) {
		assert.NoError(t, v.Validate(login{Email: "tm@lion.example", Password: "long-enough"}))
	})

	t.Run("field names are snake_case", func(t *testing.T) {
		type form struct {
			ContactNumber string `validate:"required"`
			VendorID      *int64 `validate:"required"`
		}

		err := v.Validate(form{})

		var ve *V10ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "contact_number")
		assert.Contains(t, ve.Fields, "vendor_id")
	})

	t.Run("password length bounds", func(t *testing.T) {
		err := v.Validate(login{Email: "tm@lion.example", Password: "short"})
		var ve *V10ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields["password"], "between 8 and 72")

		err = v.Validate(login{Email: "tm@lion.example", Password: strings.Repeat("x", 73)})
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "password")
	})

	t.Run("bad email is translated", func(t *testing.T) {
		err := v.Validate(login{Email: "not-an-email", Password: "long-enough"})

		var ve *V10ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "email")
		assert.NotEmpty(t, ve.Error())
	})
}
