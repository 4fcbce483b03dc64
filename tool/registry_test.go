package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ai/runloop"
)

func echoSpec() Spec {
	return Spec{
		Name:        "echo",
		Description: "Echo back the input",
		Params: []Param{
			{Name: "text", Type: TypeString, Description: "Text to echo"},
		},
		Handler: func(_ context.Context, args Args, _ *Runtime) (string, error) {
			return args.String("text"), nil
		},
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoSpec()))

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"echo"}, r.Names())

	_, ok := r.Get("echo")
	assert.True(t, ok)
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoSpec()))

	err := r.Register(echoSpec())
	var cerr *runloop.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Msg, "already registered")
}

func TestRegistry_RegisterInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"no name", Spec{Handler: func(context.Context, Args, *Runtime) (string, error) { return "", nil }}},
		{"no handler", Spec{Name: "x"}},
		{"bad param type", Spec{
			Name:    "x",
			Params:  []Param{{Name: "p", Type: ParamType("object")}},
			Handler: func(context.Context, Args, *Runtime) (string, error) { return "", nil },
		}},
		{"duplicate param", Spec{
			Name:    "x",
			Params:  []Param{{Name: "p", Type: TypeString}, {Name: "p", Type: TypeString}},
			Handler: func(context.Context, Args, *Runtime) (string, error) { return "", nil },
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.spec)
			var cerr *runloop.ConfigurationError
			assert.ErrorAs(t, err, &cerr)
		})
	}
}

func TestRegistry_FreezeSealsRegistration(t *testing.T) {
	r := NewRegistry().Add(echoSpec())
	require.NoError(t, r.Freeze())

	err := r.Register(Spec{
		Name:    "late",
		Handler: func(context.Context, Args, *Runtime) (string, error) { return "", nil },
	})
	var cerr *runloop.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Msg, "frozen")

	// Freezing again is a no-op.
	require.NoError(t, r.Freeze())
}

func TestRegistry_Schemas(t *testing.T) {
	r := NewRegistry().Add(
		echoSpec(),
		Spec{
			Name:        "add",
			Description: "Add two numbers",
			Params: []Param{
				{Name: "a", Type: TypeFloat},
				{Name: "b", Type: TypeFloat},
			},
			Handler: func(context.Context, Args, *Runtime) (string, error) { return "", nil },
		},
	)
	require.NoError(t, r.Freeze())

	schemas := r.Schemas()
	require.Len(t, schemas, 2)
	assert.Equal(t, "function", schemas[0].Type)
	assert.Equal(t, "echo", schemas[0].Name)
	assert.Equal(t, "add", schemas[1].Name)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"text": {"type": "string", "description": "Text to echo"}},
		"required": ["text"],
		"additionalProperties": false
	}`, string(schemas[0].Parameters))
}

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry().Add(echoSpec())

	out := r.Execute(context.Background(), Call{ID: "c1", Name: "echo", Arguments: `{"text":"hello"}`}, nil)
	assert.Equal(t, "hello", out)
}

func TestRegistry_ExecuteContainsFailures(t *testing.T) {
	r := NewRegistry().Add(
		echoSpec(),
		Spec{
			Name:   "fail",
			Params: nil,
			Handler: func(context.Context, Args, *Runtime) (string, error) {
				return "", errors.New("backend unavailable")
			},
		},
		Spec{
			Name: "boom",
			Handler: func(context.Context, Args, *Runtime) (string, error) {
				panic("exploded")
			},
		},
	)
	ctx := context.Background()

	tests := []struct {
		name string
		call Call
		want string
	}{
		{"unknown tool", Call{Name: "nope"}, "Error executing tool 'nope': tool not registered"},
		{"malformed args", Call{Name: "echo", Arguments: `{bad`}, "Error executing tool 'echo': "},
		{"missing arg", Call{Name: "echo", Arguments: `{}`}, "Error executing tool 'echo': "},
		{"handler error", Call{Name: "fail", Arguments: `{}`}, "Error executing tool 'fail': backend unavailable"},
		{"handler panic", Call{Name: "boom", Arguments: `{}`}, "Error executing tool 'boom': panic: exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Execute(ctx, tt.call, nil)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRegistry_ExecutePassesRuntimeValues(t *testing.T) {
	r := NewRegistry().Add(Spec{
		Name: "whoami",
		Handler: func(_ context.Context, _ Args, rt *Runtime) (string, error) {
			return rt.String("user_id"), nil
		},
	})

	out := r.Execute(context.Background(), Call{Name: "whoami", Arguments: "{}"},
		map[string]any{"user_id": "u-42"})
	assert.Equal(t, "u-42", out)

	// Runtime is never nil, even without values.
	out = r.Execute(context.Background(), Call{Name: "whoami", Arguments: "{}"}, nil)
	assert.Equal(t, "", out)
}

func TestRegistry_InvokeKeepsErrorChannel(t *testing.T) {
	r := NewRegistry().Add(echoSpec())

	_, err := r.Invoke(context.Background(), Call{Name: "missing"}, nil)
	require.Error(t, err)
	assert.Equal(t, "tool not registered", err.Error())

	out, err := r.Invoke(context.Background(), Call{Name: "echo", Arguments: `{"text":"hi"}`}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}
