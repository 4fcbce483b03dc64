package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/tool"
)

func collect(n *Normalizer, evs ...runloop.ProviderEvent) []Event {
	var out []Event
	for _, ev := range evs {
		out = append(out, n.Normalize(ev)...)
	}
	return out
}

func TestNormalizer_TextTurn(t *testing.T) {
	n := NewNormalizer()

	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventResponseCreated, ResponseID: "r1"},
		runloop.ProviderEvent{Type: runloop.EventOutputTextDelta, ItemID: "m1", Delta: "Hel"},
		runloop.ProviderEvent{Type: runloop.EventOutputTextDelta, ItemID: "m1", Delta: "lo"},
		runloop.ProviderEvent{Type: runloop.EventOutputTextDone, ItemID: "m1", Text: "Hello"},
		runloop.ProviderEvent{Type: runloop.EventResponseCompleted, ResponseID: "r1",
			Usage: &runloop.Usage{InputTokens: 10, OutputTokens: 2}},
	)

	require.Len(t, out, 5)
	assert.Equal(t, KindLifecycle, out[0].Kind)
	assert.Equal(t, PhaseNone, out[0].Phase)
	assert.Equal(t, "r1", out[0].ResponseID)

	assert.Equal(t, KindText, out[1].Kind)
	assert.Equal(t, PhaseDelta, out[1].Phase)
	assert.Equal(t, "Hel", out[1].Text)

	assert.Equal(t, PhaseFinal, out[3].Phase)
	assert.Equal(t, "Hello", out[3].Text)

	assert.Equal(t, KindLifecycle, out[4].Kind)
	assert.Equal(t, PhaseFinal, out[4].Phase)
	require.NotNil(t, out[4].Usage)
	assert.Equal(t, 10, out[4].Usage.InputTokens)

	assert.True(t, n.Completed())
	assert.True(t, n.SawText())
	assert.Equal(t, "Hello", n.FinalText())
	assert.Empty(t, n.FinalizedCalls())
}

func TestNormalizer_ToolCallTurn(t *testing.T) {
	n := NewNormalizer()

	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventResponseCreated, ResponseID: "r1"},
		runloop.ProviderEvent{Type: runloop.EventOutputItemAdded, ItemID: "fc1",
			Item: &runloop.OutputItem{Kind: runloop.OutputFunctionCall, Name: "calculate", CallID: "call-1"}},
		runloop.ProviderEvent{Type: runloop.EventFunctionCallArgumentsDelta, ItemID: "fc1", Delta: `{"a":`},
		runloop.ProviderEvent{Type: runloop.EventFunctionCallArgumentsDelta, ItemID: "fc1", Delta: `2}`},
		runloop.ProviderEvent{Type: runloop.EventFunctionCallArgumentsDone, ItemID: "fc1"},
		runloop.ProviderEvent{Type: runloop.EventResponseCompleted, ResponseID: "r1"},
	)

	require.Len(t, out, 6)
	assert.Equal(t, KindToolCall, out[1].Kind)
	assert.Equal(t, PhaseNone, out[1].Phase)
	assert.Equal(t, "calculate", out[1].ToolName)
	assert.Equal(t, "call-1", out[1].CallID)

	assert.Equal(t, PhaseDelta, out[2].Phase)
	assert.Equal(t, `{"a":`, out[2].Arguments)

	// The final event carries the accumulated arguments.
	assert.Equal(t, PhaseFinal, out[4].Phase)
	assert.Equal(t, `{"a":2}`, out[4].Arguments)

	calls := n.FinalizedCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, tool.Call{ID: "call-1", Name: "calculate", Arguments: `{"a":2}`}, calls[0])
}

func TestNormalizer_ItemDoneFinalizesCall(t *testing.T) {
	// Some providers never emit an explicit arguments.done.
	n := NewNormalizer()

	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventResponseCreated, ResponseID: "r1"},
		runloop.ProviderEvent{Type: runloop.EventOutputItemAdded, ItemID: "fc1",
			Item: &runloop.OutputItem{Kind: runloop.OutputFunctionCall, Name: "echo", CallID: "call-1"}},
		runloop.ProviderEvent{Type: runloop.EventOutputItemDone, ItemID: "fc1",
			Item: &runloop.OutputItem{Kind: runloop.OutputFunctionCall, Name: "echo", CallID: "call-1",
				Arguments: `{"text":"hi"}`}},
	)

	require.Len(t, out, 3)
	assert.Equal(t, PhaseFinal, out[2].Phase)
	assert.Equal(t, `{"text":"hi"}`, out[2].Arguments)

	// A later arguments.done for the same item is ignored.
	more := n.Normalize(runloop.ProviderEvent{
		Type: runloop.EventFunctionCallArgumentsDone, ItemID: "fc1", Arguments: `{}`})
	assert.Empty(t, more)

	calls := n.FinalizedCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, `{"text":"hi"}`, calls[0].Arguments)
}

func TestNormalizer_FinalizedCallsPreserveOrder(t *testing.T) {
	n := NewNormalizer()

	collect(n,
		runloop.ProviderEvent{Type: runloop.EventOutputItemAdded, ItemID: "b",
			Item: &runloop.OutputItem{Kind: runloop.OutputFunctionCall, Name: "second", CallID: "c2"}},
		runloop.ProviderEvent{Type: runloop.EventOutputItemAdded, ItemID: "a",
			Item: &runloop.OutputItem{Kind: runloop.OutputFunctionCall, Name: "first", CallID: "c1"}},
		runloop.ProviderEvent{Type: runloop.EventFunctionCallArgumentsDone, ItemID: "a", Arguments: "{}"},
		runloop.ProviderEvent{Type: runloop.EventFunctionCallArgumentsDone, ItemID: "b", Arguments: "{}"},
	)

	calls := n.FinalizedCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "second", calls[0].Name)
	assert.Equal(t, "first", calls[1].Name)
}

func TestNormalizer_UnfinalizedCallsExcluded(t *testing.T) {
	n := NewNormalizer()

	collect(n,
		runloop.ProviderEvent{Type: runloop.EventOutputItemAdded, ItemID: "fc1",
			Item: &runloop.OutputItem{Kind: runloop.OutputFunctionCall, Name: "echo", CallID: "c1"}},
		runloop.ProviderEvent{Type: runloop.EventFunctionCallArgumentsDelta, ItemID: "fc1", Delta: `{"te`},
	)

	assert.Empty(t, n.FinalizedCalls())
}

func TestNormalizer_FailureIsTerminal(t *testing.T) {
	n := NewNormalizer()

	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventResponseCreated, ResponseID: "r1"},
		runloop.ProviderEvent{Type: runloop.EventResponseFailed, Code: "overloaded", Message: "try later"},
	)

	require.Len(t, out, 2)
	assert.Equal(t, KindError, out[1].Kind)
	assert.Equal(t, "overloaded", out[1].Code)
	assert.Equal(t, "try later", out[1].Message)
	assert.True(t, n.Failed())

	// Events after the terminal failure produce nothing.
	more := n.Normalize(runloop.ProviderEvent{Type: runloop.EventOutputTextDelta, Delta: "x"})
	assert.Empty(t, more)
}

func TestNormalizer_IncompleteUsesTypeAsCode(t *testing.T) {
	n := NewNormalizer()

	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventResponseIncomplete, Message: "max tokens"},
	)

	require.Len(t, out, 1)
	assert.Equal(t, KindError, out[0].Kind)
	assert.Equal(t, string(runloop.EventResponseIncomplete), out[0].Code)
}

func TestNormalizer_SeqMonotonic(t *testing.T) {
	n := NewNormalizer()

	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventResponseCreated, ResponseID: "r1"},
		runloop.ProviderEvent{Type: runloop.EventOutputTextDelta, ItemID: "m1", Delta: "a"},
		runloop.ProviderEvent{Type: runloop.EventOutputTextDone, ItemID: "m1", Text: "a"},
		runloop.ProviderEvent{Type: runloop.EventResponseCompleted},
	)

	for i, e := range out {
		assert.Equal(t, i+1, e.Seq)
	}

	// Runner-synthesized events continue the sequence.
	synth := n.Next(ToolOutputStart("echo", "c1"))
	assert.Equal(t, len(out)+1, synth.Seq)
	assert.Equal(t, "r1", synth.ResponseID)
}

func TestNormalizer_Passthrough(t *testing.T) {
	n := NewNormalizer(WithPassthrough())

	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventResponseCreated, ResponseID: "r1"},
		runloop.ProviderEvent{Type: runloop.EventOutputTextDelta, ItemID: "m1", Delta: "hi"},
	)

	// Each provider event yields an Internal event before its mapping.
	require.Len(t, out, 4)
	assert.Equal(t, KindInternal, out[0].Kind)
	require.NotNil(t, out[0].Raw)
	assert.Equal(t, runloop.EventResponseCreated, out[0].Raw.Type)
	assert.Equal(t, KindLifecycle, out[1].Kind)
	assert.Equal(t, KindInternal, out[2].Kind)
	assert.Equal(t, KindText, out[3].Kind)
}

func TestNormalizer_IgnoresNonCallItems(t *testing.T) {
	n := NewNormalizer()

	// Message item announcements produce no domain event; their text
	// arrives via output_text deltas.
	out := collect(n,
		runloop.ProviderEvent{Type: runloop.EventOutputItemAdded, ItemID: "m1",
			Item: &runloop.OutputItem{Kind: runloop.OutputMessage}},
		runloop.ProviderEvent{Type: runloop.EventFunctionCallArgumentsDelta, ItemID: "unknown", Delta: "x"},
	)
	assert.Empty(t, out)
}
