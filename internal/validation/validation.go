// Package validation checks submitted forms against their struct tags and
// reports the first violation as a readable message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ayush/gyft/backend/internal/models"
)

// Error is a single form violation. It unwraps to models.ErrValidation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return models.ErrValidation.Error() + ": " + e.Message }

func (e *Error) Unwrap() error { return models.ErrValidation }

// Validator wraps a validator.Validate that names fields by their form tag.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// bcrypt only reads the first 72 bytes of a password
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	return &Validator{v: v}
}

// Struct validates s and returns nil or an *Error for the first failing field.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	fe := verrs[0]
	return &Error{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "eqfield":
		return "passwords must match"
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

// Message returns the user-facing text of a validation error, or "" when err
// is not one.
func Message(err error) string {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}
