// Package runloop provides a small runtime for tool-calling agent loops.
//
// The runtime drives a multi-turn conversation between a language model and a
// set of caller-supplied tools, iterating until the model produces a final
// answer or the configured iteration limit is reached.
//
// # Core Types
//
//   - [Message] and [Conversation]: the append-only ledger of conversation
//     turns, and the only structure serialized at the wire boundary.
//   - [Model]: the provider collaborator contract. Adapters for concrete
//     providers live under provider/.
//   - [ProviderEvent]: the closed set of low-level events a provider adapter
//     emits while streaming; normalized by the stream package.
//
// # Basic Usage
//
// Build a registry, wrap a provider, and run the agent:
//
//	registry := tool.NewRegistry()
//	registry.MustRegister(tool.Spec{
//	    Name:        "calc",
//	    Description: "Add two integers",
//	    Params: []tool.Param{
//	        {Name: "a", Type: tool.TypeInt, Description: "First operand"},
//	        {Name: "b", Type: tool.TypeInt, Description: "Second operand"},
//	    },
//	    Handler: func(ctx context.Context, args tool.Args, rt *tool.Runtime) (string, error) {
//	        return strconv.Itoa(args.Int("a") + args.Int("b")), nil
//	    },
//	})
//
//	model := openai.New(os.Getenv("OPENAI_API_KEY"))
//	ag, err := agent.New(model, registry, agent.WithSystemPrompt("You are helpful."))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := ag.Invoke(ctx, "Add 2 and 3 using the calc tool")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.FinalOutput)
//
// # Streaming
//
// For incremental output, use Stream and consume the event channel:
//
//	events, err := ag.Stream(ctx, "Add 2 and 3 using the calc tool")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for ev := range events {
//	    if ev.Kind == stream.KindText && ev.Phase == stream.PhaseDelta {
//	        fmt.Print(ev.Text)
//	    }
//	}
//
// # Higher-Level Packages
//
//   - [github.com/lattice-ai/runloop/agent]: the run loop
//   - [github.com/lattice-ai/runloop/tool]: tool specs, argument casting, registry
//   - [github.com/lattice-ai/runloop/stream]: event normalization
//   - [github.com/lattice-ai/runloop/retry]: retry with exponential backoff
//   - [github.com/lattice-ai/runloop/mcp]: Model Context Protocol integration
//   - [github.com/lattice-ai/runloop/chat]: multi-turn sessions
//   - [github.com/lattice-ai/runloop/store]: conversation persistence
//   - [github.com/lattice-ai/runloop/agui]: AG-UI protocol mapping
package runloop
