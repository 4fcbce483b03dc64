package retry

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lattice-ai/runloop"
)

// mockStatusError simulates an SDK error carrying an HTTP status code.
type mockStatusError struct {
	code int
}

func (e *mockStatusError) Error() string   { return fmt.Sprintf("http status %d", e.code) }
func (e *mockStatusError) StatusCode() int { return e.code }

func TestIsTransientNil(t *testing.T) {
	assert.False(t, IsTransient(nil))
}

func TestIsTransientProviderError(t *testing.T) {
	transient := runloop.NewProviderError("rate_limited", "slow down", true, nil)
	permanent := runloop.NewProviderError("invalid_request", "bad payload", false, nil)

	assert.True(t, IsTransient(transient))
	assert.False(t, IsTransient(permanent))
}

func TestIsTransientWrappedProviderError(t *testing.T) {
	inner := runloop.NewProviderError("overloaded", "try again", true, nil)
	wrapped := fmt.Errorf("model call: %w", inner)

	assert.True(t, IsTransient(wrapped))
}

func TestIsTransientStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected bool
	}{
		{"rate limited", 429, true},
		{"internal server error", 500, true},
		{"bad gateway", 502, true},
		{"service unavailable", 503, true},
		{"gateway timeout", 504, true},
		{"bad request", 400, false},
		{"unauthorized", 401, false},
		{"not found", 404, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(&mockStatusError{code: tt.code}))
		})
	}
}

func TestIsTransientWithNetworkError(t *testing.T) {
	timeoutErr := &mockTransientError{msg: "i/o deadline reached"}
	dnsErr := &net.DNSError{Err: "no such host", IsTemporary: true}

	assert.True(t, IsTransient(timeoutErr))
	assert.True(t, IsTransient(dnsErr))
}

func TestIsTransientWithStringPatterns(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"rate limit message", errors.New("rate limit exceeded"), true},
		{"service unavailable message", errors.New("service unavailable"), true},
		{"plain validation failure", errors.New("missing required field"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}
