package tool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lattice-ai/runloop"
)

// Call identifies a single tool invocation requested by the model.
type Call struct {
	// ID is the provider-assigned call identifier, echoed on the output.
	ID string

	// Name is the tool to invoke.
	Name string

	// Arguments is the serialized JSON argument object.
	Arguments string
}

// Registry maps tool names to specs. It is built once, frozen before the
// first run, and read-only thereafter.
type Registry struct {
	mu      sync.RWMutex
	specs   map[string]Spec
	order   []string
	schemas []runloop.ToolSchema
	frozen  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a spec. It returns a *runloop.ConfigurationError if the spec
// is invalid, the name is already taken, or the registry is frozen.
func (r *Registry) Register(s Spec) error {
	if err := s.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return &runloop.ConfigurationError{Msg: "registry is frozen; register tools before constructing the agent"}
	}
	if _, exists := r.specs[s.Name]; exists {
		return &runloop.ConfigurationError{Msg: "tool '" + s.Name + "' already registered"}
	}
	r.specs[s.Name] = s
	r.order = append(r.order, s.Name)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(s Spec) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Add registers one or more specs, panicking on error, and returns the
// registry for fluent chaining.
func (r *Registry) Add(specs ...Spec) *Registry {
	for _, s := range specs {
		r.MustRegister(s)
	}
	return r
}

// Freeze builds the model-visible schemas and seals the registry against
// further registration. Freezing an already-frozen registry is a no-op.
func (r *Registry) Freeze() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return nil
	}
	schemas := make([]runloop.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		schema, err := r.specs[name].Schema()
		if err != nil {
			return err
		}
		schemas = append(schemas, schema)
	}
	r.schemas = schemas
	r.frozen = true
	return nil
}

// Get retrieves a spec by name.
func (r *Registry) Get(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[name]
	return s, ok
}

// Specs returns all specs in registration order.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.specs[name])
	}
	return out
}

// Schemas returns the model-visible schemas in registration order.
// The registry must be frozen first.
func (r *Registry) Schemas() []runloop.ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]runloop.ToolSchema, len(r.schemas))
	copy(out, r.schemas)
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Execute runs a tool call and returns its observable output. Every failure
// mode (unknown tool, malformed or invalid arguments, handler error, handler
// panic) is converted into a short error string so the model can see it and
// recover; execution errors are never propagated to the loop.
func (r *Registry) Execute(ctx context.Context, call Call, runtimeValues map[string]any) string {
	output, err := r.Invoke(ctx, call, runtimeValues)
	if err != nil {
		return fmt.Sprintf("Error executing tool '%s': %v", call.Name, err)
	}
	return output
}

// Invoke runs a tool call and returns the raw output and error. Unlike
// Execute it keeps the error channel open, for callers that report failures
// out of band (the MCP server does).
func (r *Registry) Invoke(ctx context.Context, call Call, runtimeValues map[string]any) (string, error) {
	spec, ok := r.Get(call.Name)
	if !ok {
		return "", errors.New("tool not registered")
	}
	return invoke(ctx, spec, call, NewRuntime(runtimeValues))
}

// invoke resolves arguments, binds the runtime context, and runs the
// handler, recovering panics into errors.
func invoke(ctx context.Context, spec Spec, call Call, rt *Runtime) (output string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	raw, err := parseArguments(call.Arguments)
	if err != nil {
		return "", err
	}
	args, err := resolve(spec.Params, raw)
	if err != nil {
		return "", err
	}
	return spec.Handler(ctx, args, rt)
}
