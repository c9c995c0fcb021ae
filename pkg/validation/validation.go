// Package validation wraps go-playground/validator with the conventions the
// API uses: fields are named after their JSON keys and every failure is
// reported, keyed by field, with a human readable message.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TagNotEmail    = "not_email"
	TagWholeNumber = "whole_number"
)

// Messages maps "field.tag" or "field" to the message shown for a failure.
// The more specific key wins.
type Messages map[string]string

type Validator struct {
	validate *validator.Validate
}

var emailCheck = validator.New()

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation(TagNotEmail, notEmail); err != nil {
		panic(fmt.Sprintf("register %s: %v", TagNotEmail, err))
	}
	if err := v.RegisterValidation(TagWholeNumber, wholeNumber); err != nil {
		panic(fmt.Sprintf("register %s: %v", TagWholeNumber, err))
	}
	return &Validator{validate: v}
}

// Struct validates s and returns the failing fields, or nil when s is valid.
// The error is only set when s cannot be validated at all.
func (v *Validator) Struct(s any, messages Messages) (map[string]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		field := fe.Field()
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = messages.For(field, fe.Tag())
	}
	return fields, nil
}

func (m Messages) For(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}

// Merge adds the entries of extra that are not already in fields. A nil
// fields map is allocated when needed.
func Merge(fields, extra map[string]string) map[string]string {
	for k, v := range extra {
		if fields == nil {
			fields = make(map[string]string, len(extra))
		}
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	return fields
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func notEmail(fl validator.FieldLevel) bool {
	return emailCheck.Var(fl.Field().String(), "email") != nil
}

func wholeNumber(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	default:
		return true
	}
}
