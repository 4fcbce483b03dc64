package tool

import (
	"context"
	"encoding/json"

	"github.com/lattice-ai/runloop"
)

// ParamType is the scalar type of a tool parameter. Only the four JSON
// scalar types are supported.
type ParamType string

const (
	TypeString ParamType = "string"
	TypeInt    ParamType = "integer"
	TypeFloat  ParamType = "number"
	TypeBool   ParamType = "boolean"
)

// valid reports whether the type is one of the supported scalars.
func (t ParamType) valid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool:
		return true
	}
	return false
}

// Param declares a single tool parameter. All declared parameters are
// required; the model must supply every one.
type Param struct {
	Name        string
	Type        ParamType
	Description string

	// Enum restricts the value to one of the listed options. Entries are
	// cast to the parameter type before comparison.
	Enum []any
}

// Handler executes a tool call. Args holds the validated, cast arguments;
// rt carries the caller-supplied runtime context (never nil, possibly
// empty). The returned string is the output appended to the conversation.
type Handler func(ctx context.Context, args Args, rt *Runtime) (string, error)

// Spec declares a tool: metadata, parameters, and the handler to run.
type Spec struct {
	// Name uniquely identifies the tool within a registry.
	Name string

	// Description tells the model what the tool does.
	Description string

	// Params are the declared parameters, in order.
	Params []Param

	// Handler runs the tool. Required.
	Handler Handler

	// Strict, when set, is forwarded on the model-visible schema to
	// request exact schema adherence from the provider.
	Strict *bool
}

// validate checks the spec at registration time.
func (s Spec) validate() error {
	if s.Name == "" {
		return &runloop.ConfigurationError{Msg: "tool spec requires a name"}
	}
	if s.Handler == nil {
		return &runloop.ConfigurationError{Msg: "tool '" + s.Name + "' requires a handler"}
	}
	seen := make(map[string]bool, len(s.Params))
	for _, p := range s.Params {
		if p.Name == "" {
			return &runloop.ConfigurationError{Msg: "tool '" + s.Name + "' has a parameter without a name"}
		}
		if !p.Type.valid() {
			return &runloop.ConfigurationError{Msg: "tool '" + s.Name + "' parameter '" + p.Name + "' has unsupported type '" + string(p.Type) + "'"}
		}
		if seen[p.Name] {
			return &runloop.ConfigurationError{Msg: "tool '" + s.Name + "' declares parameter '" + p.Name + "' twice"}
		}
		seen[p.Name] = true
	}
	return nil
}

// paramSchema is the JSON Schema representation of a single parameter.
type paramSchema struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Enum        []any  `json:"enum,omitempty"`
}

// objectSchema is the JSON Schema object wrapping all parameters.
type objectSchema struct {
	Type                 string                 `json:"type"`
	Properties           map[string]paramSchema `json:"properties"`
	Required             []string               `json:"required"`
	AdditionalProperties bool                   `json:"additionalProperties"`
}

// Schema builds the model-visible tool schema. Every declared parameter is
// listed as required and additional properties are rejected; the runtime
// context binding never appears here.
func (s Spec) Schema() (runloop.ToolSchema, error) {
	obj := objectSchema{
		Type:       "object",
		Properties: make(map[string]paramSchema, len(s.Params)),
		Required:   make([]string, 0, len(s.Params)),
	}
	for _, p := range s.Params {
		obj.Properties[p.Name] = paramSchema{
			Type:        string(p.Type),
			Description: p.Description,
			Enum:        p.Enum,
		}
		obj.Required = append(obj.Required, p.Name)
	}

	params, err := json.Marshal(obj)
	if err != nil {
		return runloop.ToolSchema{}, &runloop.ConfigurationError{Msg: "tool '" + s.Name + "': " + err.Error()}
	}

	return runloop.ToolSchema{
		Type:        "function",
		Name:        s.Name,
		Description: s.Description,
		Parameters:  params,
		Strict:      s.Strict,
	}, nil
}
