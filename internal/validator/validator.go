// Package validator provides the custom validation rules shared by the
// purchase service and the client form checks.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Struct validates s using its `validate` tags and returns a VALIDATION_FAILED
// AppError keyed by JSON field name, or nil when s is valid.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return apperrors.WithFields(apperrors.ErrValidation, FieldMessages(verrs))
}

// FieldMessages turns validator errors into per-field human messages.
func FieldMessages(verrs validator.ValidationErrors) map[string][]string {
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}
	return fields
}

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
		registerRules(validate)
	})
	return validate
}

func registerRules(v *validator.Validate) {
	// Decimals and dates are validated through their text form so the rules
	// see a plain string instead of an opaque struct.
	v.RegisterCustomTypeFunc(decimalText, decimal.Decimal{})
	v.RegisterCustomTypeFunc(dateText, models.Date{})

	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("dgt", validateDecimalGT)
	_ = v.RegisterValidation("dlte", validateDecimalLTE)
	_ = v.RegisterValidation("notfuture", validateNotFuture)
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "can't be blank"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("is too long (maximum is %s characters)", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	case "dgt":
		return "must be greater than " + fe.Param()
	case "dlte":
		return "must be less than or equal to " + fe.Param()
	case "notfuture":
		return "can't be in the future"
	default:
		return "is invalid"
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.String:
		return strings.TrimSpace(fl.Field().String()) != ""
	case reflect.Ptr:
		if fl.Field().IsNil() {
			return false
		}
		return strings.TrimSpace(fl.Field().Elem().String()) != ""
	}
	return false
}

func validateDecimalGT(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	if !ok {
		return false
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return d.GreaterThan(bound)
}

func validateDecimalLTE(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	if !ok {
		return false
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return d.LessThanOrEqual(bound)
}

func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func validateNotFuture(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	s := fl.Field().String()
	if s == "" {
		return true
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return false
	}
	return !d.After(models.Today())
}

func decimalText(v reflect.Value) any {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func dateText(v reflect.Value) any {
	if d, ok := v.Interface().(models.Date); ok {
		return d.String()
	}
	return nil
}
