package runloop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageConstructors(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		kind MessageKind
	}{
		{"system", NewSystemMessage("be terse"), MessageText},
		{"user", NewUserMessage("hello"), MessageText},
		{"assistant", NewAssistantMessage("hi"), MessageText},
		{"tool call", NewToolCallMessage("echo", `{"text":"hi"}`, "call-1"), MessageToolCall},
		{"tool output", NewToolOutputMessage("call-1", "hi"), MessageToolOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.msg.Kind)
			assert.NoError(t, tt.msg.Validate())
		})
	}
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name  string
		msg   Message
		field string
	}{
		{"unknown kind", Message{Kind: "bogus"}, "kind"},
		{"text without role", Message{Kind: MessageText, Text: "hi"}, "role"},
		{"text with invalid role", Message{Kind: MessageText, Role: "robot"}, "role"},
		{"call without name", Message{Kind: MessageToolCall, CallID: "c1"}, "name"},
		{"call without id", Message{Kind: MessageToolCall, Name: "echo"}, "callId"},
		{"output without id", Message{Kind: MessageToolOutput, Output: "hi"}, "callId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestGenerateCallID(t *testing.T) {
	a := GenerateCallID()
	b := GenerateCallID()

	assert.True(t, strings.HasPrefix(a, "call-"))
	assert.NotEqual(t, a, b)
}
