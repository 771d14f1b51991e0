package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validation.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if len(name) == 0 {
			return field.Name
		}
		return name
	})
}

func ValidateStruct(data any) error {
	if err := validation.Struct(data); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func validateVar(out *ValidationError, field string, value any, tag string) {
	if err := validation.Var(value, tag); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			out.Add(field, describeFieldError(field, fieldErrors[0]))
		} else {
			out.Add(field, fmt.Sprintf("The %s field is invalid.", field))
		}
	}
}

func convertValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range fieldErrors {
		out.Add(fe.Field(), describeFieldError(fe.Field(), fe))
	}
	return out
}

func describeFieldError(field string, fe validator.FieldError) string {
	field = strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s.", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
