// Package validation wraps a shared go-playground validator and turns its
// field errors into the short messages the API returns in {"error": ...}.
package validation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the singleton validator instance.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
	})
	return validate
}

// Struct validates s and returns a user-facing error for the first failing
// field, or nil.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return errors.New(translate(fieldErrs[0]))
}

var messages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"datetime": "%s must be a date in YYYY-MM-DD format",
}

var messagesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"min":   "%s must be at least %s characters",
	"max":   "%s must be at most %s characters",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

func translate(fe validator.FieldError) string {
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := messagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
