package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/pawup/shelter-api/pkg/util"
)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// ValidationError converts an ozzo validation failure into a 400 carrying
// per-field messages.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			details[field] = fieldErr.Error()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}
