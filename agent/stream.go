package agent

import (
	"context"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/retry"
	"github.com/lattice-ai/runloop/stream"
)

// streamBuffer sizes the event channel. Sends still block when the consumer
// falls further behind; no event is ever dropped.
const streamBuffer = 64

// Stream runs the agent loop incrementally, returning a finite channel of
// normalized events. Each call produces a fresh sequence; the channel closes
// when the run terminates. Fatal conditions (provider failure, protocol
// violation, iteration limit) are delivered as a terminal error event rather
// than a panic or a stuck channel.
func (a *Agent) Stream(ctx context.Context, userInput string, opts ...RunOption) (<-chan stream.Event, error) {
	if userInput == "" {
		return nil, &runloop.ValidationError{Field: "userInput", Msg: "user input cannot be empty"}
	}
	rc := applyRunOptions(opts)

	out := make(chan stream.Event, streamBuffer)
	go a.streamLoop(ctx, userInput, rc, out)
	return out, nil
}

func (a *Agent) streamLoop(ctx context.Context, userInput string, rc *runConfig, out chan<- stream.Event) {
	defer close(out)

	conv := a.buildConversation(userInput, rc)

	for iteration := 0; iteration < a.cfg.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			a.emit(ctx, out, stream.ErrorEvent("cancelled", err.Error()))
			return
		}

		events, err := a.streamModel(ctx, a.request(conv))
		if err != nil {
			a.emit(ctx, out, stream.ErrorEvent("provider_error", err.Error()))
			return
		}

		var normOpts []stream.Option
		if rc.rawEvents {
			normOpts = append(normOpts, stream.WithPassthrough())
		}
		n := stream.NewNormalizer(normOpts...)

		for ev := range events {
			for _, e := range n.Normalize(ev) {
				if !a.emit(ctx, out, e) {
					return
				}
			}
		}

		if n.Failed() {
			// The terminal error event is already on the channel.
			return
		}

		calls := n.FinalizedCalls()
		if len(calls) == 0 {
			if !n.SawText() {
				a.emit(ctx, out, n.Next(stream.ErrorEvent("protocol_violation", "model turn produced neither tool calls nor text")))
			}
			return
		}

		if text := n.FinalText(); text != "" {
			conv.MustAppend(runloop.NewAssistantMessage(text))
		}
		for _, c := range calls {
			conv.MustAppend(runloop.NewToolCallMessage(c.Name, c.Arguments, c.ID))
		}

		// Bracket execution with synthetic tool output events so a
		// consumer can observe start and finish without raw events.
		for _, c := range calls {
			if !a.emit(ctx, out, n.Next(stream.ToolOutputStart(c.Name, c.ID))) {
				return
			}
		}
		outputs := a.executeCalls(ctx, calls, rc.runtimeValues)
		for i, c := range calls {
			conv.MustAppend(runloop.NewToolOutputMessage(c.ID, outputs[i]))
			if !a.emit(ctx, out, n.Next(stream.ToolOutputFinal(c.Name, c.ID, outputs[i]))) {
				return
			}
		}
	}

	limitErr := &runloop.IterationLimitError{Limit: a.cfg.maxIterations}
	a.emit(ctx, out, stream.ErrorEvent("max_iterations_exceeded", limitErr.Error()))
}

// streamModel opens one streaming model turn, retrying connection
// establishment on transient provider errors when retry is configured.
func (a *Agent) streamModel(ctx context.Context, req runloop.Request) (<-chan runloop.ProviderEvent, error) {
	if a.cfg.retry == nil {
		return a.model.Stream(ctx, req)
	}
	return retry.DoStream(ctx, *a.cfg.retry, func() (<-chan runloop.ProviderEvent, error) {
		return a.model.Stream(ctx, req)
	})
}

// emit delivers an event, giving up only when the run's context ends. The
// non-blocking attempt comes first so a terminal event still lands in the
// buffer after cancellation.
func (a *Agent) emit(ctx context.Context, out chan<- stream.Event, e stream.Event) bool {
	select {
	case out <- e:
		return true
	default:
	}
	select {
	case out <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
