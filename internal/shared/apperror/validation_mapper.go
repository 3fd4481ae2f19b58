package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// 1. Ganti underscore dengan spasi (hire_date -> hire date)
	s = strings.ReplaceAll(s, "_", " ")

	// 2. Ubah jadi Title Case (hire date -> Hire Date)
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a gin binding failure into a VALIDATION_ERROR with
// one message per offending field. The first field's message is used as the
// top-level message.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		details := make(map[string]string, len(errs))
		for _, e := range errs {
			humanReadableField := formatFieldName(e.Field())
			switch e.Tag() {
			case "required":
				details[e.Field()] = RequiredField(humanReadableField).Message
			default:
				details[e.Field()] = InvalidField(humanReadableField).Message
			}
		}
		return New(
			CodeValidation,
			details[errs[0].Field()],
			http.StatusBadRequest,
		).WithDetails(details)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
