// Package store persists conversation ledgers between runs.
//
// A [ConversationStore] saves and loads [runloop.Conversation] snapshots by
// key, so a server can resume a session across requests or processes. The
// backend is pluggable through the [Adapter] interface; [MemoryAdapter] is
// the default in-memory implementation.
//
// # Usage
//
//	sessions := store.NewConversationStore(nil)
//
//	// After a run, persist the updated ledger.
//	if err := sessions.Save(ctx, threadID, result.Conversation); err != nil {
//	    log.Fatal(err)
//	}
//
//	// On the next request, resume from it.
//	conv, err := sessions.Load(ctx, threadID)
//	if errors.Is(err, store.ErrNotFound) {
//	    conv = runloop.NewConversation()
//	}
//
// # Custom Adapters
//
// Implement Adapter for other backends (files, Redis, SQL):
//
//	type RedisAdapter struct { ... }
//
//	func (r *RedisAdapter) Get(ctx context.Context, key string) (json.RawMessage, bool, error) { ... }
//	func (r *RedisAdapter) Set(ctx context.Context, key string, value json.RawMessage) error { ... }
//	// ... implement remaining methods
//
//	sessions := store.NewConversationStore(&RedisAdapter{})
package store
