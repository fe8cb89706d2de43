// Package validation wraps go-playground/validator for the client's form
// payloads, reporting failures under JSON field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates wire payload structs against their validate tags.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our payloads.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if comma := strings.IndexByte(name, ','); comma >= 0 {
			return name[:comma]
		}
		return name
	})

	return &Validator{v: v}
}

// Validate checks s and returns a single user-facing error for the first
// failing field, or nil.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return errors.New(friendlyMessage(fieldErrs[0]))
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
