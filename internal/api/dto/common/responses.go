package common

// ContactFormResponse is the wire format of every contact API reply.
// Exactly one of Message/Error is set.
type ContactFormResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails carries the first offending field of a validation error.
type ErrorDetails struct {
	Field string `json:"field,omitempty"`
}

// NewSuccessResponse creates a success reply with a message.
func NewSuccessResponse(message string) ContactFormResponse {
	return ContactFormResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates an error reply.
func NewErrorResponse(message string) ContactFormResponse {
	return ContactFormResponse{
		Success: false,
		Error:   message,
	}
}

// NewValidationErrorResponse creates an error reply naming the field
// that failed validation.
func NewValidationErrorResponse(message, field string) ContactFormResponse {
	return ContactFormResponse{
		Success: false,
		Error:   message,
		Details: &ErrorDetails{Field: field},
	}
}
