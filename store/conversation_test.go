package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ai/runloop"
)

func TestConversationStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewConversationStore(nil)

	conv := runloop.NewConversation()
	conv.MustAppend(runloop.NewSystemMessage("You are helpful."))
	conv.MustAppend(runloop.NewUserMessage("What is 2+2?"))
	conv.MustAppend(runloop.NewToolCallMessage("calculate", `{"a":2,"b":2}`, "call-1"))
	conv.MustAppend(runloop.NewToolOutputMessage("call-1", "4"))
	conv.MustAppend(runloop.NewAssistantMessage("2+2 is 4."))

	require.NoError(t, s.Save(ctx, "thread-1", conv))

	loaded, err := s.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, conv.Messages(), loaded.Messages())
}

func TestConversationStore_LoadMissing(t *testing.T) {
	s := NewConversationStore(nil)

	_, err := s.Load(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConversationStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewConversationStore(nil)

	conv := runloop.NewConversation()
	conv.MustAppend(runloop.NewUserMessage("first"))
	require.NoError(t, s.Save(ctx, "thread-1", conv))

	conv.MustAppend(runloop.NewAssistantMessage("second"))
	require.NoError(t, s.Save(ctx, "thread-1", conv))

	loaded, err := s.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}

func TestConversationStore_LoadRejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	s := NewConversationStore(adapter)

	// A tool call with no call id fails ledger validation.
	require.NoError(t, adapter.Set(ctx, "bad", json.RawMessage(
		`[{"kind":"tool_call","name":"calculate"}]`)))

	_, err := s.Load(ctx, "bad")
	var verr *runloop.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestConversationStore_LoadCorruptJSON(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	s := NewConversationStore(adapter)

	require.NoError(t, adapter.Set(ctx, "corrupt", json.RawMessage(`{not json`)))

	_, err := s.Load(ctx, "corrupt")
	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "corrupt", serr.Key)
}

func TestConversationStore_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	s := NewConversationStore(nil)

	conv := runloop.NewConversation()
	conv.MustAppend(runloop.NewUserMessage("hello"))
	require.NoError(t, s.Save(ctx, "thread-1", conv))

	ok, err := s.Has(ctx, "thread-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "thread-1"))

	ok, err = s.Has(ctx, "thread-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversationStore_Keys(t *testing.T) {
	ctx := context.Background()
	s := NewConversationStore(nil)

	conv := runloop.NewConversation()
	conv.MustAppend(runloop.NewUserMessage("hello"))
	require.NoError(t, s.Save(ctx, "a", conv))
	require.NoError(t, s.Save(ctx, "b", conv))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}
