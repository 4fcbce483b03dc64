// Package tool provides tool specs, argument resolution, and the registry
// the agent loop executes against.
//
// A [Spec] declares a tool: its name, description, ordered scalar parameters,
// and a [Handler]. The registry validates specs at registration, builds the
// model-visible schemas once, and is frozen before any run starts.
//
// # Declaring a Tool
//
//	registry := tool.NewRegistry()
//	err := registry.Register(tool.Spec{
//	    Name:        "get_weather",
//	    Description: "Get current weather for a city",
//	    Params: []tool.Param{
//	        {Name: "city", Type: tool.TypeString, Description: "City name"},
//	        {Name: "unit", Type: tool.TypeString, Enum: []any{"celsius", "fahrenheit"}},
//	    },
//	    Handler: func(ctx context.Context, args tool.Args, rt *tool.Runtime) (string, error) {
//	        return lookupWeather(args.String("city"), args.String("unit"))
//	    },
//	})
//
// Arguments arriving from the model are validated and cast to the declared
// scalar types before the handler runs; a handler never sees a raw,
// unvalidated value.
//
// # Runtime Context
//
// The *Runtime parameter carries out-of-band key/value data supplied by the
// host application at invocation time. It is bound explicitly through the
// handler signature and is never part of the model-visible schema.
//
// # Failure Containment
//
// Execute converts every failure (unknown tool, bad arguments, handler error
// or panic) into a short textual output for the model instead of propagating
// it, so a faulty tool cannot abort the conversation.
package tool
