package contact

import "strings"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,min=10,max=5000"`

	// Honeypot is hidden from human users; bots tend to fill it.
	Honeypot string `json:"honeypot"`
	// SubmissionTime is the milliseconds elapsed between form render
	// and submit, reported by the client.
	SubmissionTime *int64 `json:"submissionTime,omitempty"`
	// TurnstileToken is the Cloudflare Turnstile challenge response.
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

// Normalize trims the user-facing fields and lower-cases the email.
// Validation runs against the normalized values, so a request that
// passes carries only canonical data downstream.
func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Message = strings.TrimSpace(r.Message)
}

// EmailData returns only the fields that belong in the outgoing email.
func (r *ContactRequest) EmailData() (name, email, message string) {
	return r.Name, r.Email, r.Message
}
