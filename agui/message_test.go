package agui

import (
	"testing"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/lattice-ai/runloop"
)

func TestFromMessage(t *testing.T) {
	t.Run("text message", func(t *testing.T) {
		m := FromMessage(runloop.NewUserMessage("hello"))
		if m.Role != RoleUser {
			t.Errorf("expected role user, got %q", m.Role)
		}
		if m.Content == nil || *m.Content != "hello" {
			t.Errorf("expected content 'hello', got %v", m.Content)
		}
	})

	t.Run("tool call message", func(t *testing.T) {
		m := FromMessage(runloop.NewToolCallMessage("get_weather", `{"city":"Oslo"}`, "call-1"))
		if m.Role != RoleAssistant {
			t.Errorf("expected role assistant, got %q", m.Role)
		}
		if len(m.ToolCalls) != 1 {
			t.Fatalf("expected one tool call, got %d", len(m.ToolCalls))
		}
		if m.ToolCalls[0].ID != "call-1" || m.ToolCalls[0].Function.Name != "get_weather" {
			t.Errorf("unexpected tool call: %+v", m.ToolCalls[0])
		}
	})

	t.Run("tool output message", func(t *testing.T) {
		m := FromMessage(runloop.NewToolOutputMessage("call-1", "sunny"))
		if m.Role != RoleTool {
			t.Errorf("expected role tool, got %q", m.Role)
		}
		if m.ToolCallID == nil || *m.ToolCallID != "call-1" {
			t.Errorf("expected tool call id 'call-1', got %v", m.ToolCallID)
		}
		if m.Content == nil || *m.Content != "sunny" {
			t.Errorf("expected content 'sunny', got %v", m.Content)
		}
	})
}

func TestToMessage(t *testing.T) {
	t.Run("user text", func(t *testing.T) {
		content := "hi"
		msgs := ToMessage(events.Message{ID: "m1", Role: RoleUser, Content: &content})
		if len(msgs) != 1 {
			t.Fatalf("expected one message, got %d", len(msgs))
		}
		if msgs[0].Kind != runloop.MessageText || msgs[0].Role != runloop.RoleUser {
			t.Errorf("unexpected message: %+v", msgs[0])
		}
	})

	t.Run("assistant with text and tool calls expands", func(t *testing.T) {
		content := "let me check"
		msgs := ToMessage(events.Message{
			ID:      "m2",
			Role:    RoleAssistant,
			Content: &content,
			ToolCalls: []events.ToolCall{{
				ID:   "call-1",
				Type: "function",
				Function: events.Function{
					Name:      "get_weather",
					Arguments: `{"city":"Oslo"}`,
				},
			}},
		})
		if len(msgs) != 2 {
			t.Fatalf("expected two messages, got %d", len(msgs))
		}
		if msgs[0].Kind != runloop.MessageText {
			t.Errorf("expected text first, got %s", msgs[0].Kind)
		}
		if msgs[1].Kind != runloop.MessageToolCall || msgs[1].CallID != "call-1" {
			t.Errorf("expected tool call second, got %+v", msgs[1])
		}
	})

	t.Run("tool result", func(t *testing.T) {
		callID := "call-1"
		content := "sunny"
		msgs := ToMessage(events.Message{ID: "m3", Role: RoleTool, ToolCallID: &callID, Content: &content})
		if len(msgs) != 1 {
			t.Fatalf("expected one message, got %d", len(msgs))
		}
		if msgs[0].Kind != runloop.MessageToolOutput || msgs[0].Output != "sunny" {
			t.Errorf("unexpected message: %+v", msgs[0])
		}
	})
}

func TestMessageRoundTrip(t *testing.T) {
	conv := []runloop.Message{
		runloop.NewSystemMessage("be brief"),
		runloop.NewUserMessage("weather in Oslo?"),
		runloop.NewToolCallMessage("get_weather", `{"city":"Oslo"}`, "call-1"),
		runloop.NewToolOutputMessage("call-1", "sunny"),
		runloop.NewAssistantMessage("It is sunny."),
	}

	back := ToMessages(FromMessages(conv))
	if len(back) != len(conv) {
		t.Fatalf("expected %d messages back, got %d", len(conv), len(back))
	}
	for i := range conv {
		if back[i].Kind != conv[i].Kind {
			t.Errorf("message %d: kind %s != %s", i, back[i].Kind, conv[i].Kind)
		}
	}
}
