package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Varbin/xtea3/pkg/modes"
	"github.com/Varbin/xtea3/pkg/padding"
	"github.com/Varbin/xtea3/pkg/primitive"
)

// newValidator returns a validator with the custom rules of this package.
func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	rules := map[string]validator.Func{
		"exclusive": validateExclusive,
		"mode":      validateMode,
		"cipher":    validateCipher,
		"padding":   validatePadding,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("registering %s validation: %w", tag, err)
		}
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return validate, nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields have non-empty values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return field.String() == "" || otherField.String() == ""
	}

	return true
}

func validateMode(fl validator.FieldLevel) bool {
	_, err := modes.ParseMode(fl.Field().String())

	return err == nil
}

func validateCipher(fl validator.FieldLevel) bool {
	_, err := primitive.Lookup(fl.Field().String())

	return err == nil
}

func validatePadding(fl validator.FieldLevel) bool {
	_, err := padding.Lookup(fl.Field().String())

	return err == nil
}
