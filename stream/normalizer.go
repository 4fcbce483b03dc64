package stream

import (
	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/tool"
)

// Record accumulates a tool call while its argument text streams in. It is
// keyed by the provider item id and finalized before execution.
type Record struct {
	ItemID    string
	CallID    string
	Name      string
	Arguments string
	Final     bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithPassthrough makes the normalizer additionally emit an Internal event
// wrapping each untouched provider event, interleaved in original order.
func WithPassthrough() Option {
	return func(n *Normalizer) {
		n.passthrough = true
	}
}

// Normalizer turns one turn's provider event stream into domain events.
// Consumption is single-goroutine: one provider event in, zero or more
// domain events out, in order. A fresh Normalizer is used per turn.
type Normalizer struct {
	passthrough bool

	seq        int
	responseID string
	records    map[string]*Record
	order      []string
	finalText  string
	sawText    bool
	completed  bool
	failed     bool
	usage      *runloop.Usage
}

// NewNormalizer creates a normalizer for one streaming turn.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{records: make(map[string]*Record)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize consumes one provider event and returns the domain events it
// maps to, stamped with monotonically increasing sequence numbers. After a
// terminal failure event, further input produces nothing.
func (n *Normalizer) Normalize(ev runloop.ProviderEvent) []Event {
	if n.failed {
		return nil
	}

	var out []Event
	if n.passthrough {
		out = append(out, Internal(ev))
	}

	switch ev.Type {
	case runloop.EventResponseCreated:
		n.responseID = ev.ResponseID
		out = append(out, LifecycleStarted(ev.ResponseID))

	case runloop.EventOutputItemAdded:
		if ev.Item != nil && ev.Item.Kind == runloop.OutputFunctionCall {
			rec := &Record{
				ItemID: ev.ItemID,
				CallID: ev.Item.CallID,
				Name:   ev.Item.Name,
			}
			n.records[ev.ItemID] = rec
			n.order = append(n.order, ev.ItemID)
			out = append(out, ToolCallStart(ev.ItemID, rec.Name, rec.CallID))
		}

	case runloop.EventFunctionCallArgumentsDelta:
		if rec, ok := n.records[ev.ItemID]; ok && !rec.Final {
			rec.Arguments += ev.Delta
			out = append(out, ToolCallDelta(ev.ItemID, rec.Name, rec.CallID, ev.Delta))
		}

	case runloop.EventFunctionCallArgumentsDone:
		if rec, ok := n.records[ev.ItemID]; ok && !rec.Final {
			if ev.Arguments != "" {
				rec.Arguments = ev.Arguments
			}
			rec.Final = true
			out = append(out, ToolCallFinal(ev.ItemID, rec.Name, rec.CallID, rec.Arguments))
		}

	case runloop.EventOutputItemDone:
		// Providers that never emit an explicit arguments.done still get
		// their records finalized from the completed item.
		if ev.Item != nil && ev.Item.Kind == runloop.OutputFunctionCall {
			if rec, ok := n.records[ev.ItemID]; ok && !rec.Final {
				if ev.Item.Arguments != "" {
					rec.Arguments = ev.Item.Arguments
				}
				rec.Final = true
				out = append(out, ToolCallFinal(ev.ItemID, rec.Name, rec.CallID, rec.Arguments))
			}
		}

	case runloop.EventOutputTextDelta:
		out = append(out, TextDelta(ev.ItemID, ev.Delta))

	case runloop.EventOutputTextDone:
		n.finalText += ev.Text
		n.sawText = true
		out = append(out, TextFinal(ev.ItemID, ev.Text))

	case runloop.EventResponseCompleted:
		n.completed = true
		n.usage = ev.Usage
		if ev.ResponseID != "" {
			n.responseID = ev.ResponseID
		}
		out = append(out, LifecycleCompleted(n.responseID, ev.Usage))

	case runloop.EventResponseFailed, runloop.EventResponseIncomplete:
		n.failed = true
		code := ev.Code
		if code == "" {
			code = string(ev.Type)
		}
		out = append(out, ErrorEvent(code, ev.Message))
	}

	for i := range out {
		n.seq++
		out[i].Seq = n.seq
	}
	return out
}

// Next stamps and returns a runner-synthesized event so its sequence number
// follows the normalized stream.
func (n *Normalizer) Next(e Event) Event {
	n.seq++
	e.Seq = n.seq
	if e.ResponseID == "" {
		e.ResponseID = n.responseID
	}
	return e
}

// FinalizedCalls returns the turn's tool calls in the order they were
// observed. Records that never finalized are excluded.
func (n *Normalizer) FinalizedCalls() []tool.Call {
	var calls []tool.Call
	for _, id := range n.order {
		rec := n.records[id]
		if rec.Final {
			calls = append(calls, tool.Call{ID: rec.CallID, Name: rec.Name, Arguments: rec.Arguments})
		}
	}
	return calls
}

// FinalText returns the accumulated assistant text for the turn.
func (n *Normalizer) FinalText() string {
	return n.finalText
}

// SawText reports whether the turn produced any finalized text, even empty.
func (n *Normalizer) SawText() bool {
	return n.sawText
}

// Failed reports whether a terminal failure event was observed.
func (n *Normalizer) Failed() bool {
	return n.failed
}

// Completed reports whether the turn completed successfully.
func (n *Normalizer) Completed() bool {
	return n.completed
}

// ResponseID returns the turn's response identity, where known.
func (n *Normalizer) ResponseID() string {
	return n.responseID
}
