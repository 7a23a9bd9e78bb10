// Package validation adapts go-playground/validator field errors to the
// application error taxonomy. Every failing field of a request is reported,
// the validator never stops at the first violation.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tkrause/expense-portal/internal/domain"
)

const DateLayout = "2006-01-02"

// maximum age of an expense date
const maxExpenseAge = 6 // months

var alphaNumSpaceRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// codeMap translates validator rule tags to stable application codes that
// clients can branch on. Unmapped tags fall back to VALIDATION_ERROR.
var codeMap = map[string]string{
	"numeric":    "INVALID_AMOUNT_TYPE",
	"gt":         "INVALID_AMOUNT",
	"required":   "MISSING_FIELD",
	"datetime":   "INVALID_DATE",
	"notfuture":  "FUTURE_DATE",
	"minrecency": "TOO_OLD_DATE",
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("alphanumspace", func(fl validator.FieldLevel) bool {
		return alphaNumSpaceRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			return true // format violations are reported by the datetime rule
		}
		return !t.After(time.Now())
	})
	_ = v.RegisterValidation("minrecency", func(fl validator.FieldLevel) bool {
		t, err := time.Parse(DateLayout, fl.Field().String())
		if err != nil {
			return true
		}
		return !t.Before(time.Now().AddDate(0, -maxExpenseAge, 0))
	})

	return &Validator{validate: v}
}

// Struct validates the given struct and returns one detail entry per
// violated field, or nil if the input is valid.
func (v *Validator) Struct(s any) []domain.DetailEntry {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		// InvalidValidationError, can only happen on a programming error
		return []domain.DetailEntry{{
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		}}
	}

	details := make([]domain.DetailEntry, 0, len(valErrs))
	for _, fieldErr := range valErrs {
		details = append(details, domain.DetailEntry{
			"field":   fieldErr.Field(),
			"code":    MapRuleToCode(fieldErr.Tag()),
			"message": violationMessage(fieldErr),
			"value":   fieldErr.Value(),
		})
	}

	return details
}

// MapRuleToCode maps a validator rule tag to its stable application code.
func MapRuleToCode(tag string) string {
	if code, ok := codeMap[tag]; ok {
		return code
	}
	return "VALIDATION_ERROR"
}

// BindErrorDetails converts a JSON decoding failure into detail entries.
// A type mismatch on a numeric field is reported as a wrong amount type.
// The decoder keeps filling the remaining fields after a type mismatch, so
// the partially decoded target is validated as well and all violations are
// reported together. Only a true syntax error yields a single entry.
func (v *Validator) BindErrorDetails(err error, target any) []domain.DetailEntry {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return []domain.DetailEntry{{
			"code":    "VALIDATION_ERROR",
			"message": "request body is not valid JSON",
		}}
	}

	code := "VALIDATION_ERROR"
	message := fmt.Sprintf("%s has an invalid type", typeErr.Field)
	switch typeErr.Type.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		code = "INVALID_AMOUNT_TYPE"
		message = fmt.Sprintf("%s must be a number", typeErr.Field)
	}

	details := []domain.DetailEntry{{
		"field":   typeErr.Field,
		"code":    code,
		"message": message,
		"value":   typeErr.Value,
	}}

	// the mis-typed field was left at its zero value, its rule
	// violations would only duplicate the type mismatch
	for _, detail := range v.Struct(target) {
		if detail["field"] == typeErr.Field {
			continue
		}
		details = append(details, detail)
	}

	return details
}

func violationMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "numeric":
		return fmt.Sprintf("%s must be a number", field)
	case "gt":
		return fmt.Sprintf("%s must be positive", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fieldErr.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, fieldErr.Param())
	case "uppercase":
		return fmt.Sprintf("%s must be uppercase", field)
	case "alphanumspace":
		return fmt.Sprintf("%s must not contain special characters", field)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date", field)
	case "notfuture":
		return fmt.Sprintf("%s cannot be in the future", field)
	case "minrecency":
		return fmt.Sprintf("%s cannot be older than %d months", field, maxExpenseAge)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "dive":
		return fmt.Sprintf("%s contains an invalid element", field)
	default:
		return fmt.Sprintf("%s failed validation on rule %q", field, fieldErr.Tag())
	}
}
