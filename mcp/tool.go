// Package mcp provides MCP (Model Context Protocol) integration for runloop.
//
// The integration is bidirectional:
//
//   - Server: expose a [tool.Registry] as an MCP server, so MCP clients can
//     discover and call the registered tools.
//   - Client: connect to an MCP server with [RemoteRegistry] and consume its
//     tools as registry specs that proxy execution to the remote side.
//
// # Exposing Tools as an MCP Server
//
//	registry := tool.NewRegistry().Add(weatherSpec, searchSpec)
//
//	if err := mcp.ServeStdio(registry); err != nil {
//	    log.Fatal(err)
//	}
//
// # Consuming MCP Servers
//
//	remote, err := mcp.NewRemoteRegistry(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	registry := tool.NewRegistry()
//	if err := remote.AddTo(registry); err != nil {
//	    log.Fatal(err)
//	}
//	runner, err := agent.New(model, registry)
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lattice-ai/runloop"
)

// ToMCPTool converts a model-visible tool schema to an MCP Tool. The schema's
// parameter object is used as the MCP Tool's RawInputSchema.
func ToMCPTool(s runloop.ToolSchema) mcp.Tool {
	return mcp.NewToolWithRawSchema(s.Name, s.Description, s.Parameters)
}

// FromMCPTool converts an MCP Tool to a model-visible tool schema. It
// extracts the JSON schema from either RawInputSchema or InputSchema.
func FromMCPTool(t mcp.Tool) runloop.ToolSchema {
	var schema json.RawMessage

	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else {
		data, err := json.Marshal(t.InputSchema)
		if err == nil {
			schema = data
		}
	}

	return runloop.ToolSchema{
		Type:        "function",
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// callRequest builds an MCP CallToolRequest from a tool name and serialized
// argument object.
func callRequest(name, arguments string) mcp.CallToolRequest {
	var args any
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			args = arguments
		}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText flattens an MCP call result into text, reporting whether the
// remote side marked it as an error.
func resultText(result *mcp.CallToolResult) (string, bool) {
	if result == nil {
		return "", true
	}

	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				textParts = append(textParts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			textParts = append(textParts, string(data))
		}
	}

	return strings.Join(textParts, "\n"), result.IsError
}
