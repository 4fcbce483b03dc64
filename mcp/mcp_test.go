package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/tool"
)

func TestToMCPTool(t *testing.T) {
	t.Run("converts schema to MCP tool", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`)
		ts := runloop.ToolSchema{
			Type:        "function",
			Name:        "greet",
			Description: "Greet someone",
			Parameters:  schema,
		}

		mcpTool := ToMCPTool(ts)

		assert.Equal(t, "greet", mcpTool.Name)
		assert.Equal(t, "Greet someone", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})

	t.Run("handles nil parameters", func(t *testing.T) {
		ts := runloop.ToolSchema{Name: "simple", Description: "Simple tool"}

		mcpTool := ToMCPTool(ts)

		assert.Equal(t, "simple", mcpTool.Name)
		assert.Equal(t, "Simple tool", mcpTool.Description)
	})
}

func TestFromMCPTool(t *testing.T) {
	t.Run("converts MCP tool with raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object"}`)
		mcpTool := mcp.NewToolWithRawSchema("weather", "Get weather", schema)

		ts := FromMCPTool(mcpTool)

		assert.Equal(t, "function", ts.Type)
		assert.Equal(t, "weather", ts.Name)
		assert.Equal(t, "Get weather", ts.Description)
		assert.JSONEq(t, `{"type":"object"}`, string(ts.Parameters))
	})

	t.Run("converts MCP tool with structured schema", func(t *testing.T) {
		mcpTool := mcp.NewTool("search",
			mcp.WithDescription("Search the web"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		)

		ts := FromMCPTool(mcpTool)

		assert.Equal(t, "search", ts.Name)
		assert.Contains(t, string(ts.Parameters), "query")
	})
}

func TestCallRequest(t *testing.T) {
	t.Run("parses JSON arguments", func(t *testing.T) {
		req := callRequest("calc", `{"a":2,"b":3}`)

		assert.Equal(t, "calc", req.Params.Name)
		args, ok := req.Params.Arguments.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(2), args["a"])
	})

	t.Run("empty arguments stay nil", func(t *testing.T) {
		req := callRequest("calc", "")
		assert.Nil(t, req.Params.Arguments)
	})
}

func TestResultText(t *testing.T) {
	t.Run("flattens text content", func(t *testing.T) {
		result := mcp.NewToolResultText("sunny, 22C")

		text, isErr := resultText(result)

		assert.False(t, isErr)
		assert.Equal(t, "sunny, 22C", text)
	})

	t.Run("error result is flagged", func(t *testing.T) {
		result := mcp.NewToolResultError("boom")

		text, isErr := resultText(result)

		assert.True(t, isErr)
		assert.Equal(t, "boom", text)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		_, isErr := resultText(nil)
		assert.True(t, isErr)
	})
}

func TestSpecFor(t *testing.T) {
	r := &RemoteRegistry{}

	t.Run("flat scalar schema converts", func(t *testing.T) {
		spec, err := r.specFor(runloop.ToolSchema{
			Name:        "forecast",
			Description: "Get a forecast",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"city": {"type": "string", "description": "City name"},
					"days": {"type": "integer"},
					"units": {"type": "string", "enum": ["metric", "imperial"]}
				},
				"required": ["city"]
			}`),
		})
		require.NoError(t, err)

		assert.Equal(t, "forecast", spec.Name)
		require.Len(t, spec.Params, 3)
		assert.Equal(t, "city", spec.Params[0].Name)
		assert.Equal(t, tool.TypeString, spec.Params[0].Type)
		assert.Equal(t, "days", spec.Params[1].Name)
		assert.Equal(t, tool.TypeInt, spec.Params[1].Type)
		assert.Len(t, spec.Params[2].Enum, 2)
		assert.NotNil(t, spec.Handler)
	})

	t.Run("nested schema is rejected", func(t *testing.T) {
		_, err := r.specFor(runloop.ToolSchema{
			Name: "complex",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"filters": {"type": "object"}
				}
			}`),
		})
		assert.Error(t, err)
	})
}

func TestNewServerFreezesRegistry(t *testing.T) {
	registry := tool.NewRegistry().Add(tool.Spec{
		Name:        "echo",
		Description: "Echo input",
		Params:      []tool.Param{{Name: "text", Type: tool.TypeString}},
		Handler: func(ctx context.Context, args tool.Args, _ *tool.Runtime) (string, error) {
			return args.String("text"), nil
		},
	})

	s, err := NewServer(registry, WithName("test-server"), WithVersion("0.1.0"))
	require.NoError(t, err)
	assert.NotNil(t, s)

	// Frozen now; further registration must fail.
	err = registry.Register(tool.Spec{
		Name:    "late",
		Handler: func(ctx context.Context, args tool.Args, _ *tool.Runtime) (string, error) { return "", nil },
	})
	assert.Error(t, err)
}
