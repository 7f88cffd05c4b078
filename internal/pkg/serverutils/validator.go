package serverutils

import (
	"strings"

	"babyname-be/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and returns a ValidationError naming the
// offending fields, never the raw validator output.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("invalid request body")
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, strings.ToLower(fieldErr.Field()))
	}
	return apperr.Validation("invalid or missing fields: " + strings.Join(fields, ", "))
}
