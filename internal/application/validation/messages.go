package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Mensajes por campo que reemplazan al genérico de la etiqueta; son los textos que ve el usuario.
var fieldMessages = map[string]map[string]string{
	"future": {
		"id_card_end_date":                    "ID card end date must be in the future",
		"contract_validity_start_date":        "Contract validity start date must be greater than today",
		"validity_end_date":                   "Validity end date must be greater than today",
		"access_permission_validity_end_date": "Validity end date must be greater than today",
	},
	"notpast": {
		"issue_date": "Issue date must be greater or equal than today",
	},
}

// message texto legible de un error de validación.
func message(fe validator.FieldError) string {
	if byField, ok := fieldMessages[fe.Tag()]; ok {
		if msg, ok := byField[fe.Field()]; ok {
			return msg
		}
	}
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "fiscalcode":
		return "Fiscal code format incorrect"
	case "miclaemail":
		return "Invalid email, a @micla.info address is required"
	case "isodate":
		return "Invalid date, expected YYYY-MM-DD"
	case "future":
		return "Date must be greater than today"
	case "notpast":
		return "Date must be greater or equal than today"
	case "adult":
		return "You must be 18 years old"
	case tagAfterStart:
		return "End date must be greater than the start date"
	case tagAfterIssue:
		return "Validity end date must be greater than the issue date"
	case tagRequiredVisa:
		return "Visa end date is required when visa start date is set"
	case "min":
		if fe.Kind() == reflect.String {
			return "Must be at least " + fe.Param() + " characters"
		}
		return "Must contain at least " + fe.Param() + " item(s)"
	case "max":
		if fe.Kind() == reflect.String {
			return "Must be at most " + fe.Param() + " characters"
		}
		return "Must be at most " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}
