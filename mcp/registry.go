package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/tool"
)

// RemoteRegistry provides access to tools hosted by an MCP server. Remote
// tools are surfaced as [tool.Spec] values whose handlers proxy execution to
// the server, so they register into a [tool.Registry] like local tools.
//
// RemoteRegistry is safe for concurrent use. The tool list is cached locally
// and can be refreshed with [RemoteRegistry.Refresh].
type RemoteRegistry struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]runloop.ToolSchema
	order  []string
}

// NewRemoteRegistry creates a RemoteRegistry connected to an MCP server via
// stdio. The command is the path to the server executable; args are passed
// to it.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	return newRemoteRegistry(ctx, c)
}

// NewRemoteRegistrySSE creates a RemoteRegistry connected to an MCP server
// via SSE.
func NewRemoteRegistrySSE(ctx context.Context, baseURL string) (*RemoteRegistry, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}

	return newRemoteRegistry(ctx, c)
}

// NewRemoteRegistryFromClient creates a RemoteRegistry from an existing MCP
// client. The client is started and initialized here.
func NewRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	return newRemoteRegistry(ctx, c)
}

func newRemoteRegistry(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "runloop-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	r := &RemoteRegistry{
		client: c,
		tools:  make(map[string]runloop.ToolSchema),
	}

	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh fetches the current list of tools from the MCP server.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]runloop.ToolSchema, len(result.Tools))
	r.order = r.order[:0]
	for _, t := range result.Tools {
		r.tools[t.Name] = FromMCPTool(t)
		r.order = append(r.order, t.Name)
	}

	return nil
}

// Schemas returns the model-visible schemas of all remote tools in server
// order.
func (r *RemoteRegistry) Schemas() []runloop.ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]runloop.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns the names of all remote tools in server order.
func (r *RemoteRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of remote tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Has returns true if the server exposes a tool with the given name.
func (r *RemoteRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Execute calls a tool on the remote MCP server and returns its flattened
// text output. A result the server marks as an error comes back as an error.
func (r *RemoteRegistry) Execute(ctx context.Context, name, arguments string) (string, error) {
	result, err := r.client.CallTool(ctx, callRequest(name, arguments))
	if err != nil {
		return "", err
	}

	text, isErr := resultText(result)
	if isErr {
		if text == "" {
			text = "remote tool reported an error"
		}
		return "", errors.New(text)
	}
	return text, nil
}

// Specs converts the remote tools into registry specs whose handlers proxy
// to the server. Only flat object schemas over the scalar parameter types
// convert; a remote tool with a nested or non-scalar schema is an error.
// Every converted parameter is required at call time.
func (r *RemoteRegistry) Specs() ([]tool.Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]tool.Spec, 0, len(r.order))
	for _, name := range r.order {
		spec, err := r.specFor(r.tools[name])
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// AddTo registers every remote tool into the given registry.
func (r *RemoteRegistry) AddTo(registry *tool.Registry) error {
	specs, err := r.Specs()
	if err != nil {
		return err
	}
	for _, s := range specs {
		if err := registry.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// remoteSchema is the subset of JSON Schema that converts to a tool.Spec.
type remoteSchema struct {
	Type       string `json:"type"`
	Properties map[string]struct {
		Type        string `json:"type"`
		Description string `json:"description"`
		Enum        []any  `json:"enum"`
	} `json:"properties"`
}

func (r *RemoteRegistry) specFor(schema runloop.ToolSchema) (tool.Spec, error) {
	var rs remoteSchema
	if len(schema.Parameters) > 0 {
		if err := json.Unmarshal(schema.Parameters, &rs); err != nil {
			return tool.Spec{}, fmt.Errorf("tool '%s': unparseable input schema: %w", schema.Name, err)
		}
	}

	names := make([]string, 0, len(rs.Properties))
	for pname := range rs.Properties {
		names = append(names, pname)
	}
	sort.Strings(names)

	params := make([]tool.Param, 0, len(rs.Properties))
	for _, pname := range names {
		prop := rs.Properties[pname]
		var pt tool.ParamType
		switch prop.Type {
		case "string":
			pt = tool.TypeString
		case "integer":
			pt = tool.TypeInt
		case "number":
			pt = tool.TypeFloat
		case "boolean":
			pt = tool.TypeBool
		default:
			return tool.Spec{}, fmt.Errorf("tool '%s': parameter '%s' has unsupported type %q", schema.Name, pname, prop.Type)
		}
		params = append(params, tool.Param{
			Name:        pname,
			Type:        pt,
			Description: prop.Description,
			Enum:        prop.Enum,
		})
	}

	name := schema.Name
	return tool.Spec{
		Name:        name,
		Description: schema.Description,
		Params:      params,
		Handler: func(ctx context.Context, args tool.Args, _ *tool.Runtime) (string, error) {
			data, err := json.Marshal(map[string]any(args))
			if err != nil {
				return "", err
			}
			return r.Execute(ctx, name, string(data))
		},
	}, nil
}
