package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// Get returns the shared validator instance
func Get() *Validator {
	once.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("notblank", validateNotBlank)
		instance = &Validator{validate: v}
	})
	return instance
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FormatValidationError formats validation errors into a field -> message map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid input"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "notblank":
			errs[field] = "Must not be blank"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte", "gt":
			errs[field] = fmt.Sprintf("Must be %s %s", e.Tag(), e.Param())
		case "gtefield":
			errs[field] = fmt.Sprintf("Must not be before %s", strings.ToLower(e.Param()))
		case "latitude":
			errs[field] = "Invalid latitude"
		case "longitude":
			errs[field] = "Invalid longitude"
		case "url":
			errs[field] = "Invalid URL"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Summary renders FormatValidationError output as a single sorted line
func Summary(err error) string {
	fields := FormatValidationError(err)
	parts := make([]string, 0, len(fields))
	for k, msg := range fields {
		parts = append(parts, k+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
