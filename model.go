package runloop

import (
	"context"
	"encoding/json"
)

// ToolChoice controls how the model selects tools.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide when to call tools (default).
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceNone disables tool calls for the request.
	ToolChoiceNone ToolChoice = "none"
	// ToolChoiceRequired forces the model to call a tool.
	ToolChoiceRequired ToolChoice = "required"
)

// ToolSchema is the model-visible definition of a tool. Parameters is a JSON
// Schema object; runtime-context bindings are never part of it.
type ToolSchema struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
	Strict      *bool           `json:"strict,omitempty"`
}

// Request is the shape the runtime sends to a model collaborator: the wire
// projection of the conversation plus the available tools and selection
// policy. Generation parameters (model id, temperature, token limits) are
// provider configuration, set when the adapter client is constructed.
type Request struct {
	Input             []WireItem
	Tools             []ToolSchema
	ToolChoice        ToolChoice
	ParallelToolCalls bool
}

// Model is the collaborator contract for a language model provider.
// Implementations live under provider/ and must be safe for use by a single
// run at a time.
type Model interface {
	// Respond sends the request and blocks until the complete response is
	// available. Failures are reported as *ProviderError.
	Respond(ctx context.Context, req Request) (*Response, error)

	// Stream sends the request and returns a channel of low-level provider
	// events. The channel is closed when the turn completes or fails; a
	// failure is delivered as a terminal failed or incomplete event, never
	// as a panic or a stuck channel.
	Stream(ctx context.Context, req Request) (<-chan ProviderEvent, error)
}
