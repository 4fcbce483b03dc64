package agent

import "github.com/lattice-ai/runloop"

// RunItemKind identifies the kind of an item in a run trace.
type RunItemKind string

const (
	// ItemMessageOutput is an assistant text message.
	ItemMessageOutput RunItemKind = "message_output"

	// ItemToolCall is a tool call requested by the model.
	ItemToolCall RunItemKind = "tool_call"

	// ItemToolCallOutput is the output of an executed tool call.
	ItemToolCallOutput RunItemKind = "tool_call_output"

	// ItemReasoning is a reasoning trace produced by the model.
	ItemReasoning RunItemKind = "reasoning"
)

// RunItem is a single entry in the trace a run accumulates.
type RunItem struct {
	Kind RunItemKind `json:"kind"`

	// Text holds message or reasoning content.
	Text string `json:"text,omitempty"`

	// Name, Arguments, and CallID describe tool call items.
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	CallID    string `json:"callId,omitempty"`

	// Output holds the tool output for ItemToolCallOutput.
	Output string `json:"output,omitempty"`
}

// RunResult is the final outcome of a blocking run.
type RunResult struct {
	// Input is the original user input.
	Input string `json:"input"`

	// Items is the ordered trace of everything the run produced.
	Items []RunItem `json:"items"`

	// FinalOutput is the model's final text answer.
	FinalOutput string `json:"finalOutput"`

	// Conversation is the complete ledger the run produced, including the
	// final assistant message. Feed it back via agent.WithConversation or
	// persist it to resume the session later.
	Conversation *runloop.Conversation `json:"-"`
}
