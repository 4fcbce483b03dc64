package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lattice-ai/runloop/tool"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server exposing every tool in the registry. The
// registry is frozen here if it is not already; schema problems surface now.
func NewServer(registry *tool.Registry, opts ...ServerOption) (*server.MCPServer, error) {
	cfg := &serverConfig{
		name:    "runloop-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := registry.Freeze(); err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, schema := range registry.Schemas() {
		s.AddTool(ToMCPTool(schema), mcpHandler(registry, schema.Name))
	}

	return s, nil
}

// mcpHandler wraps one registered tool as an MCP tool handler. Failures are
// reported through the MCP error result rather than contained as text.
func mcpHandler(registry *tool.Registry, name string) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsJSON := "{}"
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			argsJSON = string(data)
		}

		output, err := registry.Invoke(ctx, tool.Call{Name: name, Arguments: argsJSON}, nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(output), nil
	}
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(registry *tool.Registry, opts ...ServerOption) error {
	s, err := NewServer(registry, opts...)
	if err != nil {
		return err
	}
	return server.ServeStdio(s)
}
