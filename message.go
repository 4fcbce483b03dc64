package runloop

import "github.com/google/uuid"

// Role identifies the sender of a text message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageKind identifies the variant of a Message.
type MessageKind string

const (
	// MessageText is a plain text turn from the system, user, or assistant.
	MessageText MessageKind = "text"

	// MessageToolCall records a tool invocation requested by the model.
	MessageToolCall MessageKind = "tool_call"

	// MessageToolOutput records the output of an executed tool call.
	MessageToolOutput MessageKind = "tool_output"
)

// Message is a single entry in a conversation ledger. It is a tagged variant:
// exactly one of the three kinds is populated, and each kind has its own
// required fields. Use the constructors; a message assembled by hand is
// checked again by [Conversation.Append].
type Message struct {
	Kind MessageKind `json:"kind"`

	// Role and Text are set for MessageText.
	Role Role   `json:"role,omitempty"`
	Text string `json:"text,omitempty"`

	// Name, Arguments, and CallID are set for MessageToolCall.
	// Arguments is the serialized JSON argument object exactly as the
	// model produced it.
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`

	// CallID correlates a tool call with its output. Set for
	// MessageToolCall and MessageToolOutput.
	CallID string `json:"callId,omitempty"`

	// Output is set for MessageToolOutput.
	Output string `json:"output,omitempty"`
}

// NewSystemMessage creates a system text turn.
func NewSystemMessage(text string) Message {
	return Message{Kind: MessageText, Role: RoleSystem, Text: text}
}

// NewUserMessage creates a user text turn.
func NewUserMessage(text string) Message {
	return Message{Kind: MessageText, Role: RoleUser, Text: text}
}

// NewAssistantMessage creates an assistant text turn.
func NewAssistantMessage(text string) Message {
	return Message{Kind: MessageText, Role: RoleAssistant, Text: text}
}

// NewToolCallMessage records a tool call requested by the model.
// Arguments is the serialized JSON argument object.
func NewToolCallMessage(name, arguments, callID string) Message {
	return Message{Kind: MessageToolCall, Name: name, Arguments: arguments, CallID: callID}
}

// NewToolOutputMessage records the output of an executed tool call.
func NewToolOutputMessage(callID, output string) Message {
	return Message{Kind: MessageToolOutput, CallID: callID, Output: output}
}

// GenerateCallID creates a unique tool call identifier.
func GenerateCallID() string {
	return "call-" + uuid.New().String()
}

// Validate checks the variant invariants for the message kind.
// It returns a *ValidationError describing the first violation found.
func (m Message) Validate() error {
	switch m.Kind {
	case MessageText:
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return &ValidationError{Field: "role", Msg: "text messages require a system, user, or assistant role"}
		}
	case MessageToolCall:
		if m.Name == "" {
			return &ValidationError{Field: "name", Msg: "tool call messages require a tool name"}
		}
		if m.CallID == "" {
			return &ValidationError{Field: "callId", Msg: "tool call messages require a call id"}
		}
	case MessageToolOutput:
		if m.CallID == "" {
			return &ValidationError{Field: "callId", Msg: "tool output messages require a call id"}
		}
	default:
		return &ValidationError{Field: "kind", Msg: "unsupported message kind: " + string(m.Kind)}
	}
	return nil
}
