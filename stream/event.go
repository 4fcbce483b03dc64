// Package stream normalizes provider event streams into a small closed set
// of domain events with stable ordering.
//
// Provider adapters emit [runloop.ProviderEvent] values; a [Normalizer]
// consumes them one at a time and produces zero or more [Event] values, in
// order. Consumers switch exhaustively on (Kind, Phase).
package stream

import (
	"time"

	"github.com/lattice-ai/runloop"
)

// Kind classifies a domain event.
type Kind string

const (
	// KindText carries assistant output text.
	KindText Kind = "text"

	// KindToolCall carries a tool call announcement, argument fragments,
	// or the finalized call.
	KindToolCall Kind = "tool_call"

	// KindToolOutput brackets tool execution: the runner emits one event
	// when execution starts and one when the output is available.
	KindToolOutput Kind = "tool_output"

	// KindLifecycle marks the start and completion of a streaming turn.
	KindLifecycle Kind = "lifecycle"

	// KindError reports a provider failure or an aborted run. Always the
	// last event before the stream closes.
	KindError Kind = "error"

	// KindInternal wraps an untouched provider event for diagnostics.
	// Emitted only in passthrough mode.
	KindInternal Kind = "internal"
)

// Phase marks whether an event is incremental, complete, or neither.
type Phase string

const (
	PhaseDelta Phase = "delta"
	PhaseFinal Phase = "final"
	PhaseNone  Phase = "none"
)

// Event is a single normalized domain event. Which fields are populated
// depends on (Kind, Phase); use the constructors to build well-formed
// events.
type Event struct {
	Kind  Kind
	Phase Phase

	// Seq orders events within one Stream call, starting at 1.
	Seq int

	// ResponseID identifies the streaming turn, where known.
	ResponseID string

	// ItemID identifies the provider output item the event belongs to.
	ItemID string

	// Text carries an incremental fragment for Text/Delta and the
	// complete text for Text/Final.
	Text string

	// ToolName, CallID, and Arguments describe tool call events. For
	// ToolCall/Delta, Arguments is the incremental fragment; for
	// ToolCall/Final it is the complete argument text.
	ToolName  string
	CallID    string
	Arguments string

	// Output carries the tool output for ToolOutput/Final.
	Output string

	// Usage is set on Lifecycle completion events.
	Usage *runloop.Usage

	// Code and Message describe error events.
	Code    string
	Message string

	// Raw holds the untouched provider event for Internal events.
	Raw *runloop.ProviderEvent

	// Timestamp is when the event was produced.
	Timestamp time.Time
}

func newEvent(kind Kind, phase Phase) Event {
	return Event{Kind: kind, Phase: phase, Timestamp: time.Now()}
}

// LifecycleStarted marks the start of a streaming turn.
func LifecycleStarted(responseID string) Event {
	e := newEvent(KindLifecycle, PhaseNone)
	e.ResponseID = responseID
	return e
}

// LifecycleCompleted marks the successful completion of a streaming turn and
// carries its usage accounting.
func LifecycleCompleted(responseID string, usage *runloop.Usage) Event {
	e := newEvent(KindLifecycle, PhaseFinal)
	e.ResponseID = responseID
	e.Usage = usage
	return e
}

// TextDelta carries an incremental text fragment.
func TextDelta(itemID, text string) Event {
	e := newEvent(KindText, PhaseDelta)
	e.ItemID = itemID
	e.Text = text
	return e
}

// TextFinal carries the complete text of a message item.
func TextFinal(itemID, text string) Event {
	e := newEvent(KindText, PhaseFinal)
	e.ItemID = itemID
	e.Text = text
	return e
}

// ToolCallStart announces a new tool call item.
func ToolCallStart(itemID, name, callID string) Event {
	e := newEvent(KindToolCall, PhaseNone)
	e.ItemID = itemID
	e.ToolName = name
	e.CallID = callID
	return e
}

// ToolCallDelta carries an argument text fragment for an open tool call.
func ToolCallDelta(itemID, name, callID, fragment string) Event {
	e := newEvent(KindToolCall, PhaseDelta)
	e.ItemID = itemID
	e.ToolName = name
	e.CallID = callID
	e.Arguments = fragment
	return e
}

// ToolCallFinal carries the finalized tool call with its complete arguments.
func ToolCallFinal(itemID, name, callID, arguments string) Event {
	e := newEvent(KindToolCall, PhaseFinal)
	e.ItemID = itemID
	e.ToolName = name
	e.CallID = callID
	e.Arguments = arguments
	return e
}

// ToolOutputStart marks the start of tool execution for a finalized call.
func ToolOutputStart(name, callID string) Event {
	e := newEvent(KindToolOutput, PhaseNone)
	e.ToolName = name
	e.CallID = callID
	return e
}

// ToolOutputFinal carries the output of an executed tool call.
func ToolOutputFinal(name, callID, output string) Event {
	e := newEvent(KindToolOutput, PhaseFinal)
	e.ToolName = name
	e.CallID = callID
	e.Output = output
	return e
}

// ErrorEvent reports a failure. It is always terminal.
func ErrorEvent(code, message string) Event {
	e := newEvent(KindError, PhaseNone)
	e.Code = code
	e.Message = message
	return e
}

// Internal wraps an untouched provider event for diagnostics.
func Internal(raw runloop.ProviderEvent) Event {
	e := newEvent(KindInternal, PhaseNone)
	e.Raw = &raw
	return e
}
