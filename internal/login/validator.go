package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground/validator library to implement Echo's
// Validator interface.
type Validator struct {
	validator *validator.Validate
}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements the echo.Validator interface.
func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// invalidField returns the name of the first field that failed validation.
func invalidField(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), true
	}
	return "", false
}
