// Package validator adapts the shared struct validator to echo.
package validator

import (
	"ordering/internal/validation"

	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator. Failures are returned as *errors.ValidationError.
type EchoValidator struct {
	validate *validator.Validate
}

func New() *EchoValidator {
	return &EchoValidator{validate: validation.New()}
}

func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return validation.ToValidationError(err)
	}

	return nil
}
