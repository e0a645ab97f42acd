package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// TurnstileService handles server-side verification of Cloudflare
// Turnstile tokens.
type TurnstileService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewTurnstileService creates a new Turnstile service. An empty secret
// key disables verification entirely.
func NewTurnstileService(secretKey string) *TurnstileService {
	return &TurnstileService{
		secretKey: secretKey,
		verifyURL: turnstileVerifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewTurnstileServiceWithURL creates a service pointed at a custom
// verification endpoint. Intended for tests.
func NewTurnstileServiceWithURL(secretKey, verifyURL string) *TurnstileService {
	s := NewTurnstileService(secretKey)
	if verifyURL != "" {
		s.verifyURL = verifyURL
	}
	return s
}

// Enabled reports whether verification is configured. This is the
// capability query the rest of the pipeline keys off; it must agree
// with the validator's token requirement.
func (s *TurnstileService) Enabled() bool {
	return s.secretKey != ""
}

// TurnstileResult is the outcome of one verification attempt.
type TurnstileResult struct {
	Success bool
	Error   string
}

// turnstileResponse represents the siteverify API response
type turnstileResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Verify checks token against the siteverify endpoint. With no secret
// configured it short-circuits to success; callers must gate on
// Enabled() so that path never masks a real misconfiguration. A single
// attempt is made; transient provider failures surface to the user as
// a failed verification.
func (s *TurnstileService) Verify(ctx context.Context, token, remoteIP string) TurnstileResult {
	if s.secretKey == "" {
		return TurnstileResult{Success: true}
	}

	if token == "" {
		return TurnstileResult{Success: false, Error: "Turnstile token is missing"}
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return TurnstileResult{Success: false, Error: fmt.Sprintf("failed to create verification request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return TurnstileResult{Success: false, Error: fmt.Sprintf("failed to verify token: %v", err)}
	}
	defer resp.Body.Close()

	var result turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return TurnstileResult{Success: false, Error: fmt.Sprintf("failed to parse verification response: %v", err)}
	}

	if !result.Success {
		errorCodes := result.ErrorCodes
		if len(errorCodes) == 0 {
			errorCodes = []string{"unknown-error"}
		}
		return TurnstileResult{Success: false, Error: strings.Join(errorCodes, ", ")}
	}

	return TurnstileResult{Success: true}
}
