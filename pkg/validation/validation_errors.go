package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts a binding error into a field -> message map.
// The second return value is false when err carries no field detail.
func FieldErrors(err error) (map[string]string, bool) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = formatSingleError(e)
		}
		return fields, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{
			typeErr.Field: fmt.Sprintf("Expected a value of type %s", typeErr.Type.String()),
		}, true
	}

	return nil, false
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return fmt.Sprintf("Must be at least %s", param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return fmt.Sprintf("Must be at most %s", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "gtefield":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Join(strings.Fields(param), ", "))
	case "email":
		return "Enter a valid email address"
	case "url":
		return "Enter a valid URL"
	case "eqfield":
		return fmt.Sprintf("Must match %s", param)
	case "valid_name":
		return "Only letters, spaces and . ' - are allowed"
	case "valid_phone":
		return "Enter a valid phone number (7-15 digits, optional +)"
	case "valid_username":
		return "Only letters, digits and @/./+/-/_ are allowed"
	case "no_emoji":
		return "Emoji and special symbols are not allowed"
	case "dive":
		return "Contains an invalid item"
	default:
		return fmt.Sprintf("Failed validation (%s)", e.Tag())
	}
}
