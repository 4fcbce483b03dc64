package runloop

// ProviderEventType identifies a low-level event in a provider stream.
// Adapters map their SDK's native stream onto this closed set; the stream
// package normalizes it into domain events.
type ProviderEventType string

const (
	// EventResponseCreated opens a streaming turn.
	EventResponseCreated ProviderEventType = "response.created"

	// EventOutputItemAdded announces a new output item. For function call
	// items this opens a tool call record.
	EventOutputItemAdded ProviderEventType = "response.output_item.added"

	// EventOutputItemDone marks an output item complete, carrying its
	// final form.
	EventOutputItemDone ProviderEventType = "response.output_item.done"

	// EventFunctionCallArgumentsDelta carries an argument text fragment
	// for an open tool call item.
	EventFunctionCallArgumentsDelta ProviderEventType = "response.function_call_arguments.delta"

	// EventFunctionCallArgumentsDone finalizes the argument text for a
	// tool call item.
	EventFunctionCallArgumentsDone ProviderEventType = "response.function_call_arguments.done"

	// EventOutputTextDelta carries an incremental text fragment.
	EventOutputTextDelta ProviderEventType = "response.output_text.delta"

	// EventOutputTextDone carries the complete text of a message item.
	EventOutputTextDone ProviderEventType = "response.output_text.done"

	// EventResponseCompleted closes a successful streaming turn and
	// carries usage accounting.
	EventResponseCompleted ProviderEventType = "response.completed"

	// EventResponseFailed reports a provider failure. Terminal.
	EventResponseFailed ProviderEventType = "response.failed"

	// EventResponseIncomplete reports a response cut short (length,
	// content filter). Terminal.
	EventResponseIncomplete ProviderEventType = "response.incomplete"
)

// ProviderEvent is a single low-level event in a provider stream. Which
// fields are populated depends on Type.
type ProviderEvent struct {
	Type ProviderEventType

	// ResponseID identifies the streaming turn.
	ResponseID string

	// ItemID identifies the output item the event belongs to.
	ItemID string

	// Item carries the announced or finalized output item for
	// output_item.added and output_item.done.
	Item *OutputItem

	// Delta carries incremental text or argument fragments.
	Delta string

	// Text carries the complete text for output_text.done.
	Text string

	// Arguments carries the complete argument text for
	// function_call_arguments.done.
	Arguments string

	// Usage is set on response.completed.
	Usage *Usage

	// Code and Message describe the failure for response.failed and the
	// reason for response.incomplete.
	Code    string
	Message string
}
