package agui

import (
	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/lattice-ai/runloop"
)

// Role constants matching the AG-UI protocol.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// ToMessages converts AG-UI messages to conversation messages.
func ToMessages(msgs []events.Message) []runloop.Message {
	result := make([]runloop.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, ToMessage(msg)...)
	}
	return result
}

// ToMessage converts a single AG-UI message. An assistant message carrying
// both text and tool calls expands into one text message followed by one
// tool-call message per call.
func ToMessage(msg events.Message) []runloop.Message {
	if msg.ToolCallID != nil {
		content := ""
		if msg.Content != nil {
			content = *msg.Content
		}
		return []runloop.Message{runloop.NewToolOutputMessage(*msg.ToolCallID, content)}
	}

	var result []runloop.Message
	if msg.Content != nil && *msg.Content != "" {
		switch msg.Role {
		case RoleSystem:
			result = append(result, runloop.NewSystemMessage(*msg.Content))
		case RoleAssistant:
			result = append(result, runloop.NewAssistantMessage(*msg.Content))
		default:
			result = append(result, runloop.NewUserMessage(*msg.Content))
		}
	}
	for _, tc := range msg.ToolCalls {
		result = append(result, runloop.NewToolCallMessage(tc.Function.Name, tc.Function.Arguments, tc.ID))
	}
	return result
}

// FromMessages converts conversation messages to AG-UI messages.
func FromMessages(msgs []runloop.Message) []events.Message {
	result := make([]events.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, FromMessage(msg))
	}
	return result
}

// FromMessage converts a single conversation message to an AG-UI message.
func FromMessage(msg runloop.Message) events.Message {
	m := events.Message{
		ID: events.GenerateMessageID(),
	}

	switch msg.Kind {
	case runloop.MessageToolCall:
		m.Role = RoleAssistant
		m.ToolCalls = []events.ToolCall{{
			ID:   msg.CallID,
			Type: "function",
			Function: events.Function{
				Name:      msg.Name,
				Arguments: msg.Arguments,
			},
		}}
	case runloop.MessageToolOutput:
		m.Role = RoleTool
		m.ToolCallID = &msg.CallID
		m.Content = &msg.Output
	default:
		m.Role = fromRole(msg.Role)
		m.Content = &msg.Text
	}

	return m
}

func fromRole(role runloop.Role) string {
	switch role {
	case runloop.RoleSystem:
		return RoleSystem
	case runloop.RoleAssistant:
		return RoleAssistant
	default:
		return RoleUser
	}
}
