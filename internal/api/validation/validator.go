// Package validation schema-checks contact submissions and maps the
// first failure to the user-facing field/message pair the API returns.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/afandihd/portfolio-backend/internal/api/dto/v1/contact"
)

// FieldError is a single validation failure: the offending field's
// wire name and a human-readable message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Validator checks contact requests. When requireTurnstile is set, a
// missing turnstileToken is reported through the same error path as any
// other schema violation, so the orchestrator has one failure mode for
// malformed input.
type Validator struct {
	validate         *validator.Validate
	requireTurnstile bool
}

// New creates a contact-form validator. requireTurnstile should be the
// server's single CAPTCHA capability query, evaluated at construction.
func New(requireTurnstile bool) *Validator {
	v := validator.New()

	// Report json tag names so error details match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate:         v,
		requireTurnstile: requireTurnstile,
	}
}

// ValidateContactForm normalizes req in place and checks it against the
// schema. It returns the first failing field, or nil when the request
// is valid. A nil return guarantees all syntactic constraints hold;
// downstream stages never re-validate these fields.
func (cv *Validator) ValidateContactForm(req *contact.ContactRequest) *FieldError {
	req.Normalize()

	if err := cv.validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok || len(validationErrors) == 0 {
			return &FieldError{Message: "Validation failed"}
		}
		first := validationErrors[0]
		return &FieldError{
			Field:   first.Field(),
			Message: messageFor(first),
		}
	}

	if cv.requireTurnstile && req.TurnstileToken == "" {
		return &FieldError{
			Field:   "turnstileToken",
			Message: "CAPTCHA verification required. Please ensure the Turnstile site key and secret key are configured together.",
		}
	}

	return nil
}

// messageFor maps a validator error to the message the form shows.
func messageFor(e validator.FieldError) string {
	label := fieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", label, e.Param())
	case "email":
		return "Invalid email address"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func fieldLabel(field string) string {
	switch field {
	case "name":
		return "Name"
	case "email":
		return "Email"
	case "message":
		return "Message"
	default:
		return field
	}
}
