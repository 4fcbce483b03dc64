package runloop

// OutputKind identifies the kind of an output item in a model response.
type OutputKind string

const (
	// OutputMessage is an assistant text message.
	OutputMessage OutputKind = "message"

	// OutputFunctionCall is a request to invoke a tool.
	OutputFunctionCall OutputKind = "function_call"

	// OutputReasoning is a reasoning trace item. Preserved in the run
	// trace but never sent back to the model.
	OutputReasoning OutputKind = "reasoning"
)

// OutputItem is a single item in a model response.
type OutputItem struct {
	Kind OutputKind `json:"kind"`

	// ID is the provider-assigned item identifier.
	ID string `json:"id,omitempty"`

	// Text is the message text for OutputMessage, or the trace content
	// for OutputReasoning.
	Text string `json:"text,omitempty"`

	// Name, Arguments, and CallID are set for OutputFunctionCall.
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	CallID    string `json:"callId,omitempty"`
}

// Usage contains token accounting for a model call.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// Add accumulates usage from another call.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Response is a complete (non-streaming) model response: an ordered list of
// output items plus usage accounting.
type Response struct {
	// ID is the provider-assigned response identifier.
	ID string `json:"id,omitempty"`

	// Output holds the response items in the order the model produced them.
	Output []OutputItem `json:"output"`

	Usage Usage `json:"usage"`
}
