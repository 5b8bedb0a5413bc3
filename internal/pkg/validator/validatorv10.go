package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	v10 "github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	"github.com/chamindaf/lion-svc/internal/pkg/strcase"
)

// V10ValidationError carries per-field messages keyed by snake_case field
// name, ready to be embedded in an error response body.
type V10ValidationError struct {
	Fields map[string]string
}

func (e *V10ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}

	return strings.Join(parts, "; ")
}

// V10Validator implements Validator using go-playground/validator with
// english translations and service-specific rules.
type V10Validator struct {
	validate *v10.Validate
	trans    ut.Translator
}

// NewV10Validator builds the validator and registers the password rule:
// bcrypt truncates input at 72 bytes, so passwords are 8-72 characters.
func NewV10Validator() (*V10Validator, error) {
	validate := v10.New(v10.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("validator: english translator not found")
	}

	if err := entrans.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("password", func(fl v10.FieldLevel) bool {
		length := len(fl.Field().String())

		return length >= 8 && length <= 72
	}); err != nil {
		return nil, err
	}

	if err := validate.RegisterTranslation("password", trans,
		func(ut ut.Translator) error {
			return ut.Add("password", "{0} must be between 8 and 72 characters", true)
		},
		func(ut ut.Translator, fe v10.FieldError) string {
			msg, err := ut.T("password", fe.Field())
			if err != nil {
				return fmt.Sprintf("%s must be between 8 and 72 characters", fe.Field())
			}

			return msg
		},
	); err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, trans: trans}, nil
}

// Validate checks data against its struct tags. It returns a
// *V10ValidationError when any rule fails.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs v10.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.trans)
	}

	return &V10ValidationError{Fields: fields}
}
