package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("notblank", validateNotBlank)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// ValidateStruct runs the struct's validate tags and returns one FieldError
// per failing field, or nil when the value is valid.
func ValidateStruct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	var out []FieldError
	for _, fe := range verrs {
		field := fe.Field()
		fieldName := strings.ToLower(field[:1]) + field[1:]

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldName)
		case "notblank":
			message = fmt.Sprintf("%s must be a non-empty string", fieldName)
		case "oneof":
			message = fmt.Sprintf("invalid %s %q, must be one of: %s",
				fieldName, fe.Value(), strings.Join(strings.Fields(fe.Param()), ", "))
		case "min":
			if fe.Kind() == reflect.Slice {
				message = fmt.Sprintf("%s must contain at least %s item(s)", fieldName, fe.Param())
			} else {
				message = fmt.Sprintf("%s must be at least %s characters", fieldName, fe.Param())
			}
		default:
			message = fmt.Sprintf("%s is invalid", fieldName)
		}

		out = append(out, FieldError{
			Field:   fieldName,
			Message: message,
		})
	}

	return out
}
