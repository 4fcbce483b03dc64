package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/retry"
	"github.com/lattice-ai/runloop/tool"
)

// Agent drives autonomous tool-calling conversations. Configuration is
// immutable after construction; per-call state lives in the run.
type Agent struct {
	model    runloop.Model
	registry *tool.Registry
	cfg      config
}

// New creates an Agent over a model collaborator and a tool registry. The
// registry is frozen here; register all tools first. A nil registry yields
// an agent without tools. Configuration problems (iteration limit below
// one, unbuildable tool schemas) are reported now, never at run time.
func New(model runloop.Model, registry *tool.Registry, opts ...Option) (*Agent, error) {
	if model == nil {
		return nil, &runloop.ConfigurationError{Msg: "agent requires a model"}
	}

	cfg := config{
		maxIterations:     DefaultMaxIterations,
		toolChoice:        runloop.ToolChoiceAuto,
		parallelToolCalls: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxIterations < 1 {
		return nil, &runloop.ConfigurationError{
			Msg: fmt.Sprintf("max iterations must be at least 1, got %d", cfg.maxIterations),
		}
	}

	if registry == nil {
		registry = tool.NewRegistry()
	}
	if err := registry.Freeze(); err != nil {
		return nil, err
	}

	return &Agent{model: model, registry: registry, cfg: cfg}, nil
}

// Invoke runs the agent loop to completion and returns the accumulated item
// trace and final text. The loop is bounded by the configured iteration
// limit; exceeding it returns a *runloop.IterationLimitError after exactly
// that many model calls.
func (a *Agent) Invoke(ctx context.Context, userInput string, opts ...RunOption) (*RunResult, error) {
	if userInput == "" {
		return nil, &runloop.ValidationError{Field: "userInput", Msg: "user input cannot be empty"}
	}
	rc := applyRunOptions(opts)
	conv := a.buildConversation(userInput, rc)

	result := &RunResult{Input: userInput}

	for iteration := 0; iteration < a.cfg.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := a.respond(ctx, a.request(conv))
		if err != nil {
			return nil, err
		}

		turn := inspect(resp)
		result.Items = append(result.Items, turn.items...)

		if len(turn.calls) == 0 {
			if !turn.sawMessage {
				return nil, &runloop.ProtocolError{Msg: "model turn produced neither tool calls nor text"}
			}
			conv.MustAppend(runloop.NewAssistantMessage(turn.finalText))
			result.FinalOutput = turn.finalText
			result.Conversation = conv
			return result, nil
		}

		// Record the full turn before any tool runs so an interrupted
		// run still leaves a reconstructable history.
		if turn.finalText != "" {
			conv.MustAppend(runloop.NewAssistantMessage(turn.finalText))
		}
		for _, c := range turn.calls {
			conv.MustAppend(runloop.NewToolCallMessage(c.Name, c.Arguments, c.ID))
		}

		outputs := a.executeCalls(ctx, turn.calls, rc.runtimeValues)
		for i, c := range turn.calls {
			conv.MustAppend(runloop.NewToolOutputMessage(c.ID, outputs[i]))
			result.Items = append(result.Items, RunItem{
				Kind:   ItemToolCallOutput,
				Name:   c.Name,
				CallID: c.ID,
				Output: outputs[i],
			})
		}
	}

	return nil, &runloop.IterationLimitError{Limit: a.cfg.maxIterations}
}

// turnOutcome is the partition of one model response.
type turnOutcome struct {
	items      []RunItem
	calls      []tool.Call
	finalText  string
	sawMessage bool
}

// inspect partitions a response into tool calls and at most one assistant
// text payload, preserving item order in the trace.
func inspect(resp *runloop.Response) turnOutcome {
	var turn turnOutcome
	for _, item := range resp.Output {
		switch item.Kind {
		case runloop.OutputReasoning:
			turn.items = append(turn.items, RunItem{Kind: ItemReasoning, Text: item.Text})
		case runloop.OutputFunctionCall:
			turn.calls = append(turn.calls, tool.Call{ID: item.CallID, Name: item.Name, Arguments: item.Arguments})
			turn.items = append(turn.items, RunItem{
				Kind:      ItemToolCall,
				Name:      item.Name,
				Arguments: item.Arguments,
				CallID:    item.CallID,
			})
		case runloop.OutputMessage:
			turn.sawMessage = true
			turn.finalText = item.Text
			turn.items = append(turn.items, RunItem{Kind: ItemMessageOutput, Text: item.Text})
		}
	}
	return turn
}

// buildConversation seeds the run's conversation: a forked template when one
// is supplied, otherwise a fresh ledger with the agent's system prompt.
func (a *Agent) buildConversation(userInput string, rc *runConfig) *runloop.Conversation {
	var conv *runloop.Conversation
	if rc.template != nil {
		conv = rc.template.Fork()
	} else {
		conv = runloop.NewConversation()
		if a.cfg.systemPrompt != "" {
			conv.MustAppend(runloop.NewSystemMessage(a.cfg.systemPrompt))
		}
	}
	conv.MustAppend(runloop.NewUserMessage(userInput))
	return conv
}

// request projects the conversation and tool schemas for the model. With no
// tools registered the schema list is omitted and the tool choice is inert.
func (a *Agent) request(conv *runloop.Conversation) runloop.Request {
	req := runloop.Request{
		Input:             conv.Wire(),
		ToolChoice:        a.cfg.toolChoice,
		ParallelToolCalls: a.cfg.parallelToolCalls,
	}
	if a.registry.Len() > 0 {
		req.Tools = a.registry.Schemas()
	}
	return req
}

// respond performs one blocking model call, retrying transient provider
// errors when retry is configured.
func (a *Agent) respond(ctx context.Context, req runloop.Request) (*runloop.Response, error) {
	if a.cfg.retry == nil {
		return a.model.Respond(ctx, req)
	}
	return retry.Do(ctx, *a.cfg.retry, func() (*runloop.Response, error) {
		return a.model.Respond(ctx, req)
	})
}

// executeCalls runs the turn's tool calls and returns their outputs indexed
// by observation order. Under the parallel flag calls execute concurrently,
// but outputs keep the order the calls were observed in.
func (a *Agent) executeCalls(ctx context.Context, calls []tool.Call, values map[string]any) []string {
	outputs := make([]string, len(calls))
	if a.cfg.parallelToolCalls && len(calls) > 1 {
		var wg sync.WaitGroup
		for i, c := range calls {
			wg.Add(1)
			go func(idx int, call tool.Call) {
				defer wg.Done()
				outputs[idx] = a.registry.Execute(ctx, call, values)
			}(i, c)
		}
		wg.Wait()
		return outputs
	}
	for i, c := range calls {
		outputs[i] = a.registry.Execute(ctx, c, values)
	}
	return outputs
}

func applyRunOptions(opts []RunOption) *runConfig {
	rc := &runConfig{}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}
