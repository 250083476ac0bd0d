package middleware

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "kpicast/internal/errors"
	"kpicast/internal/kpi"
)

// Validator validates request structs using struct tags and reports
// failures by JSON field name
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the kpicast custom tags registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("forecastable", isForecastable)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct validates v and returns a 422 APIError listing every
// rejected field, or nil
func (m *Validator) ValidateStruct(v interface{}) error {
	if fieldErrs := m.FieldErrors(v, ""); len(fieldErrs) > 0 {
		return apierrors.NewValidationErrors(fieldErrs)
	}
	return nil
}

// FieldErrors validates v and returns its field failures. Field names are
// prefixed with prefix, so "body[2]." yields "body[2].value".
func (m *Validator) FieldErrors(v interface{}, prefix string) []apierrors.ValidationError {
	err := m.validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []apierrors.ValidationError{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
	}

	fieldErrs := make([]apierrors.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(fieldErrs, apierrors.ValidationError{
			Field:   prefix + fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return fieldErrs
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "forecastable":
		return fmt.Sprintf("%s must be a finite number within forecast range", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isForecastable accepts finite numbers whose largest forecast step stays finite
func isForecastable(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return false
		}
		field = field.Elem()
	}

	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
	default:
		return false
	}

	v := field.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return !math.IsInf(math.Abs(v)*kpi.MaxForecastGrowth(), 0)
}
