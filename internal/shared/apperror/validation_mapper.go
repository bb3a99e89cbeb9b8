package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// base_salary -> Base Salary
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError mengubah error binding Gin menjadi AppError dengan pesan per field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		case "min", "gte":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be at least %s", field, e.Param()), http.StatusBadRequest)
		case "oneof":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be one of [%s]", field, e.Param()), http.StatusBadRequest)
		case "yearmonth":
			return New(CodeInvalidInput, fmt.Sprintf("%s must use YYYY-MM format", field), http.StatusBadRequest)
		case "clock":
			return New(CodeInvalidInput, fmt.Sprintf("%s must use HH:MM format", field), http.StatusBadRequest)
		default:
			return InvalidField(field)
		}
	}

	return ErrInvalidInput.WithDetails(err.Error())
}
