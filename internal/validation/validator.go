// Package validation checks inbound request bodies.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	cellNumberPattern  = regexp.MustCompile(`^[0-9]{10,15}$`)
	linkedInURLPattern = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[\w-]+/?$`)
)

// Errors lists human-readable validation failures, one per field.
type Errors []string

func (e Errors) Error() string {
	return "validation failed: " + strings.Join(e, "; ")
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "cellnumber", func(fl validator.FieldLevel) bool {
		return cellNumberPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "linkedinurl", func(fl validator.FieldLevel) bool {
		return linkedInURLPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct validates s and returns Errors when any rule fails. Failures on the
// skipped fields, named by their JSON name, are left out.
func (v *Validator) Struct(s any, skip ...string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if slices.Contains(skip, fe.Field()) {
			continue
		}
		msgs = append(msgs, message(fe))
	}
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "notblank":
		return fmt.Sprintf("'%s' must be a non-empty string", field)
	case "cellnumber":
		return fmt.Sprintf("'%s' must be 10-15 digits", field)
	case "linkedinurl":
		return fmt.Sprintf("'%s' must be a valid LinkedIn URL", field)
	default:
		return fmt.Sprintf("'%s' is invalid", field)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}
