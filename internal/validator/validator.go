package validator

import (
	"sync"

	ierr "github.com/flexprice/cryptapi/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared validator, creating it on first use
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateStruct checks the validate tags of s. Failures are marked ErrValidation
// and carry one reportable detail per failing field.
func ValidateStruct(s any, hint string) error {
	if err := GetValidator().Struct(s); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fieldErr := range validateErrs {
				details[fieldErr.Namespace()] = fieldErr.Error()
			}
		}
		return ierr.WithError(err).
			WithHint(hint).
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
