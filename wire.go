package runloop

// Wire content part types.
const (
	WireInputText  = "input_text"
	WireOutputText = "output_text"
)

// Wire item types for structured (non-role) items.
const (
	WireFunctionCall       = "function_call"
	WireFunctionCallOutput = "function_call_output"
)

// WireContent is a single content part of a role-based wire item.
type WireContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// WireItem is the provider-facing projection of a Message. Role items carry
// Role and Content; tool call and tool output items carry Type plus their
// structured fields.
type WireItem struct {
	Type      string        `json:"type,omitempty"`
	Role      string        `json:"role,omitempty"`
	Content   []WireContent `json:"content,omitempty"`
	Name      string        `json:"name,omitempty"`
	Arguments string        `json:"arguments,omitempty"`
	CallID    string        `json:"call_id,omitempty"`
	Output    string        `json:"output,omitempty"`
}

// wireItem projects a single message. The mapping is fixed per variant:
// system and user text become input_text content, assistant text becomes
// output_text content, and the tool variants become structured records.
func wireItem(m Message) WireItem {
	switch m.Kind {
	case MessageToolCall:
		return WireItem{
			Type:      WireFunctionCall,
			Name:      m.Name,
			Arguments: m.Arguments,
			CallID:    m.CallID,
		}
	case MessageToolOutput:
		return WireItem{
			Type:   WireFunctionCallOutput,
			CallID: m.CallID,
			Output: m.Output,
		}
	default:
		contentType := WireInputText
		if m.Role == RoleAssistant {
			contentType = WireOutputText
		}
		return WireItem{
			Role:    string(m.Role),
			Content: []WireContent{{Type: contentType, Text: m.Text}},
		}
	}
}
