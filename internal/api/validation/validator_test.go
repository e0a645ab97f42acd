package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afandihd/portfolio-backend/internal/api/dto/v1/contact"
)

func validRequest() *contact.ContactRequest {
	return &contact.ContactRequest{
		Name:    "John Doe",
		Email:   "john@example.com",
		Message: "Hello, I would like to get in touch.",
	}
}

func TestValidateContactForm(t *testing.T) {
	v := New(false)

	t.Run("accepts a valid submission", func(t *testing.T) {
		assert.Nil(t, v.ValidateContactForm(validRequest()))
	})

	t.Run("rejects a one-character name", func(t *testing.T) {
		req := validRequest()
		req.Name = "J"

		err := v.ValidateContactForm(req)
		require.NotNil(t, err)
		assert.Equal(t, "name", err.Field)
		assert.Equal(t, "Name must be at least 2 characters", err.Message)

		req.Name = "Jo"
		assert.Nil(t, v.ValidateContactForm(req))
	})

	t.Run("rejects missing fields with field names", func(t *testing.T) {
		tests := []struct {
			mutate  func(*contact.ContactRequest)
			field   string
			message string
		}{
			{func(r *contact.ContactRequest) { r.Name = "" }, "name", "Name is required"},
			{func(r *contact.ContactRequest) { r.Email = "" }, "email", "Email is required"},
			{func(r *contact.ContactRequest) { r.Message = "" }, "message", "Message is required"},
		}

		for _, tt := range tests {
			req := validRequest()
			tt.mutate(req)

			err := v.ValidateContactForm(req)
			require.NotNil(t, err)
			assert.Equal(t, tt.field, err.Field)
			assert.Equal(t, tt.message, err.Message)
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		req := validRequest()
		req.Email = "not-an-email"

		err := v.ValidateContactForm(req)
		require.NotNil(t, err)
		assert.Equal(t, "email", err.Field)
		assert.Equal(t, "Invalid email address", err.Message)
	})

	t.Run("rejects oversized fields", func(t *testing.T) {
		req := validRequest()
		req.Message = strings.Repeat("a", 5001)

		err := v.ValidateContactForm(req)
		require.NotNil(t, err)
		assert.Equal(t, "message", err.Field)
		assert.Equal(t, "Message must be less than 5000 characters", err.Message)
	})

	t.Run("rejects a too-short message", func(t *testing.T) {
		req := validRequest()
		req.Message = "012345678"

		err := v.ValidateContactForm(req)
		require.NotNil(t, err)
		assert.Equal(t, "Message must be at least 10 characters", err.Message)
	})

	t.Run("normalizes email to trimmed lowercase", func(t *testing.T) {
		req := validRequest()
		req.Email = "  JOHN@EXAMPLE.COM  "

		require.Nil(t, v.ValidateContactForm(req))
		assert.Equal(t, "john@example.com", req.Email)
	})

	t.Run("trims name and message", func(t *testing.T) {
		req := validRequest()
		req.Name = "  John  "
		req.Message = "  a perfectly fine message  "

		require.Nil(t, v.ValidateContactForm(req))
		assert.Equal(t, "John", req.Name)
		assert.Equal(t, "a perfectly fine message", req.Message)
	})
}

func TestValidateContactForm_Turnstile(t *testing.T) {
	t.Run("requires a token when CAPTCHA is enabled", func(t *testing.T) {
		v := New(true)

		err := v.ValidateContactForm(validRequest())
		require.NotNil(t, err)
		assert.Equal(t, "turnstileToken", err.Field)
		assert.Contains(t, err.Message, "CAPTCHA verification required")
	})

	t.Run("accepts a token when CAPTCHA is enabled", func(t *testing.T) {
		v := New(true)

		req := validRequest()
		req.TurnstileToken = "tok"
		assert.Nil(t, v.ValidateContactForm(req))
	})

	t.Run("ignores the token when CAPTCHA is disabled", func(t *testing.T) {
		v := New(false)
		assert.Nil(t, v.ValidateContactForm(validRequest()))
	})
}
