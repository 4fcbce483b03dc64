package store

import (
	"context"
	"encoding/json"

	"github.com/lattice-ai/runloop"
)

// ConversationStore saves and loads conversation ledgers by key.
// Snapshots are stored as JSON message arrays, so any Adapter backend works.
type ConversationStore struct {
	adapter Adapter
}

// NewConversationStore creates a store backed by the given adapter.
// If adapter is nil, a default in-memory adapter is used.
func NewConversationStore(adapter Adapter) *ConversationStore {
	if adapter == nil {
		adapter = NewMemoryAdapter()
	}
	return &ConversationStore{adapter: adapter}
}

// Save persists a snapshot of the conversation under the given key,
// replacing any previous snapshot.
func (s *ConversationStore) Save(ctx context.Context, key string, conv *runloop.Conversation) error {
	raw, err := json.Marshal(conv.Messages())
	if err != nil {
		return &SerializationError{Key: key, Err: err}
	}
	return s.adapter.Set(ctx, key, raw)
}

// Load reconstructs the conversation stored under the given key.
// Returns ErrNotFound if no snapshot exists. Every message is re-validated
// on load, so a corrupted snapshot cannot smuggle an invalid ledger back in.
func (s *ConversationStore) Load(ctx context.Context, key string) (*runloop.Conversation, error) {
	raw, ok, err := s.adapter.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	var messages []runloop.Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, &SerializationError{Key: key, Err: err}
	}
	return runloop.NewConversationFrom(messages)
}

// Delete removes the snapshot under the given key. No error if absent.
func (s *ConversationStore) Delete(ctx context.Context, key string) error {
	return s.adapter.Delete(ctx, key)
}

// Has returns true if a snapshot exists under the given key.
func (s *ConversationStore) Has(ctx context.Context, key string) (bool, error) {
	return s.adapter.Has(ctx, key)
}

// Keys returns the keys of all stored snapshots.
func (s *ConversationStore) Keys(ctx context.Context) ([]string, error) {
	return s.adapter.Keys(ctx)
}

// Adapter returns the underlying adapter.
func (s *ConversationStore) Adapter() Adapter {
	return s.adapter
}
