package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

var validate = validator.New()

// validateStruct runs struct-tag validation and converts failures into the
// typed validation error the error middleware renders.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := map[string]any{}
		for _, fe := range ve {
			details[strings.ToLower(fe.Field())] = fieldError(fe)
		}
		return apperrors.NewValidationError("invalid request", details)
	}
	return apperrors.NewValidationError("invalid request", nil)
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
