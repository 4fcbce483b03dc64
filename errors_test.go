package runloop

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ConfigurationError{Msg: "duplicate tool"}, "runloop: configuration: duplicate tool"},
		{&ValidationError{Field: "a", Msg: "missing"}, "runloop: validation: a: missing"},
		{&ValidationError{Msg: "empty input"}, "runloop: validation: empty input"},
		{&ProtocolError{Msg: "no output"}, "runloop: protocol: no output"},
		{&IterationLimitError{Limit: 10}, "runloop: agent exceeded max iterations (10)"},
		{&ProviderError{Code: "overloaded", Msg: "busy"}, "runloop: provider: overloaded: busy"},
		{&ProviderError{Msg: "busy"}, "runloop: provider: busy"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestProviderError_FallsBackToCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewProviderError("", "", true, cause)

	assert.Equal(t, "runloop: provider: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&ProviderError{Transient: true}))
	assert.False(t, IsTransient(&ProviderError{Transient: false}))
	assert.False(t, IsTransient(errors.New("plain")))
	assert.False(t, IsTransient(nil))

	// Wrapped provider errors are still recognized.
	wrapped := fmt.Errorf("call failed: %w", &ProviderError{Transient: true})
	assert.True(t, IsTransient(wrapped))
}

func TestUsage_Add(t *testing.T) {
	u := Usage{InputTokens: 10, OutputTokens: 5}
	u.Add(Usage{InputTokens: 3, OutputTokens: 2})

	assert.Equal(t, 13, u.InputTokens)
	assert.Equal(t, 7, u.OutputTokens)
}
