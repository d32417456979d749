package task

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	titleRules       = "required,max=200"
	descriptionRules = "max=1000"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the create constraints and returns a *ValidationError
// listing every offending field.
func (in CreateInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate create input: %w", err)
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, toFieldError(fe.Field(), fe))
	}
	return &ValidationError{Fields: fields}
}

// Validate checks only the fields present in the patch. A null title or
// completed flag is rejected because neither attribute is nullable.
func (p Patch) Validate() error {
	var fields []FieldError

	if p.Title.IsNull() {
		fields = append(fields, nullField("title"))
	} else if v, ok := p.Title.Get(); ok {
		fields = append(fields, checkVar("title", v, titleRules)...)
	}
	if v, ok := p.Description.Get(); ok {
		fields = append(fields, checkVar("description", v, descriptionRules)...)
	}
	if p.Completed.IsNull() {
		fields = append(fields, nullField("completed"))
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkVar(field string, value any, rules string) []FieldError {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: field, Rule: "invalid", Message: fmt.Sprintf("%s is invalid", field)}}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, toFieldError(field, fe))
	}
	return fields
}

func nullField(field string) FieldError {
	return FieldError{Field: field, Rule: "required", Message: fmt.Sprintf("%s must not be null", field)}
}

func toFieldError(field string, fe validator.FieldError) FieldError {
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s failed the %q rule", field, fe.Tag())
	}
	return FieldError{Field: field, Rule: fe.Tag(), Message: msg}
}
