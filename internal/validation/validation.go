// Package validation builds the struct validator shared by the stores and the HTTP layer.
package validation

import (
	"reflect"
	"strings"

	domainerrors "ordering/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// New returns a validator that reports fields by their JSON names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ToValidationError reports the first failed validator rule.
func ToValidationError(err error) *domainerrors.ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domainerrors.NewValidationError("", err.Error())
	}

	fe := fieldErrs[0]
	// Drop the struct name: "AddItemInput.customizations[0].price" -> "customizations[0].price"
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return domainerrors.NewValidationError(field, "is required")
	case "gte":
		return domainerrors.NewValidationError(field, "must be >= "+fe.Param())
	case "email":
		return domainerrors.NewValidationError(field, "must be a valid email address")
	default:
		return domainerrors.NewValidationError(field, "failed "+fe.Tag())
	}
}
