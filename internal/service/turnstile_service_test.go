package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifyServer(t *testing.T, handler http.HandlerFunc) (*TurnstileService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewTurnstileService("test-secret")
	s.verifyURL = srv.URL
	return s, srv
}

func TestTurnstileService_Enabled(t *testing.T) {
	assert.False(t, NewTurnstileService("").Enabled())
	assert.True(t, NewTurnstileService("secret").Enabled())
}

func TestTurnstileService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("short-circuits to success when no secret is configured", func(t *testing.T) {
		s := NewTurnstileService("")
		result := s.Verify(ctx, "anything", "1.2.3.4")
		assert.True(t, result.Success)
	})

	t.Run("fails on empty token", func(t *testing.T) {
		s := NewTurnstileService("secret")
		result := s.Verify(ctx, "", "")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "missing")
	})

	t.Run("posts form-encoded token and remote IP", func(t *testing.T) {
		var gotSecret, gotResponse, gotRemoteIP string
		s, _ := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotSecret = r.PostFormValue("secret")
			gotResponse = r.PostFormValue("response")
			gotRemoteIP = r.PostFormValue("remoteip")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true}`))
		})

		result := s.Verify(ctx, "tok-123", "203.0.113.9")
		assert.True(t, result.Success)
		assert.Equal(t, "test-secret", gotSecret)
		assert.Equal(t, "tok-123", gotResponse)
		assert.Equal(t, "203.0.113.9", gotRemoteIP)
	})

	t.Run("joins provider error codes on rejection", func(t *testing.T) {
		s, _ := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response","timeout-or-duplicate"]}`))
		})

		result := s.Verify(ctx, "bad-token", "")
		assert.False(t, result.Success)
		assert.Equal(t, "invalid-input-response, timeout-or-duplicate", result.Error)
	})

	t.Run("reports unknown error when rejection has no codes", func(t *testing.T) {
		s, _ := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false}`))
		})

		result := s.Verify(ctx, "bad-token", "")
		assert.False(t, result.Success)
		assert.Equal(t, "unknown-error", result.Error)
	})

	t.Run("surfaces parse failures", func(t *testing.T) {
		s, _ := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		result := s.Verify(ctx, "tok", "")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "failed to parse")
	})

	t.Run("surfaces network failures", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		s := NewTurnstileService("secret")
		s.verifyURL = srv.URL

		result := s.Verify(ctx, "tok", "")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "failed to verify")
	})
}
