package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages match what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type fieldErrors []fieldError

func (e fieldErrors) Error() string {
	var s []string
	for _, err := range e {
		s = append(s, err.Error())
	}
	return strings.Join(s, ", ")
}

type fieldError struct {
	Field string
	Msg   string
}

func (e fieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

// ValidateStruct checks the validate tags of in. Failures wrap ErrInvalidInput.
func ValidateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var errs fieldErrors
	for _, valErr := range valErrs {
		errs = append(errs, buildFieldError(valErr))
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
}

func buildFieldError(f validator.FieldError) fieldError {
	switch f.Tag() {
	case "required":
		return fieldError{Field: f.Field(), Msg: "is required"}
	case "email":
		return fieldError{Field: f.Field(), Msg: "must be a valid email address"}
	case "min":
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("must be at least %s", f.Param())}
	case "max":
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("must be at most %s", f.Param())}
	case "oneof":
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("must be one of [%s]", f.Param())}
	default:
		return fieldError{Field: f.Field(), Msg: fmt.Sprintf("invalid value tag %s", f.Tag())}
	}
}
