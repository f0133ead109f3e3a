package serverutils

import (
	"errors"
	"fmt"

	"tobacco-catalog-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the `validate` tags of req and reports the first
// failing field as a validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.Validation(fe.Field(), fmt.Errorf("failed on '%s'", fe.Tag()))
	}
	return apperror.Validation("request", err)
}
