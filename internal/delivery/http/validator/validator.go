// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"

	domainerrors "usersvc/internal/domain/errors"
)

// Validator implements echo.Validator on top of struct tags.
type Validator struct {
	validate *validatorlib.Validate
}

// New builds the request payload validator.
func New() *Validator {
	return &Validator{
		validate: validatorlib.New(validatorlib.WithRequiredStructEnabled()),
	}
}

// Validate checks the bound payload against its `validate` tags. Failures are
// surfaced as the domain validation error so the central error handler maps
// them to a 422.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
