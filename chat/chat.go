// Package chat provides multi-turn sessions on top of the agent loop.
//
// A [Session] owns a conversation ledger and carries it across turns, so
// callers get a stateful chat interface without managing templates by hand:
//
//	session := chat.NewSession(runner)
//	reply, err := session.Send(ctx, "What is 2+2?")
//	reply, err = session.Send(ctx, "And doubled?")
//
// With a store and key, each completed turn is persisted and an existing
// snapshot is resumed on construction:
//
//	sessions := store.NewConversationStore(nil)
//	session, err := chat.ResumeSession(ctx, runner, sessions, threadID)
package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/agent"
	"github.com/lattice-ai/runloop/store"
)

// Session is a stateful multi-turn conversation driven by an agent. A failed
// turn leaves the ledger untouched, so the session stays consistent and the
// turn can be retried.
//
// Methods are safe for concurrent use; turns are serialized.
type Session struct {
	mu     sync.Mutex
	runner *agent.Agent
	conv   *runloop.Conversation

	// sessions and key are set for persistent sessions.
	sessions *store.ConversationStore
	key      string
}

// NewSession creates an in-memory session with an empty ledger.
func NewSession(runner *agent.Agent) *Session {
	return &Session{runner: runner, conv: runloop.NewConversation()}
}

// ResumeSession creates a session persisted under the given key. An existing
// snapshot is loaded; otherwise the session starts empty. Each completed
// turn is saved back to the store.
func ResumeSession(ctx context.Context, runner *agent.Agent, sessions *store.ConversationStore, key string) (*Session, error) {
	conv, err := sessions.Load(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		conv = runloop.NewConversation()
	} else if err != nil {
		return nil, err
	}
	return &Session{runner: runner, conv: conv, sessions: sessions, key: key}, nil
}

// Send runs one agent turn with the session's history and returns the final
// text answer. On success the session's ledger advances to include the turn;
// persistent sessions also save the new snapshot.
func (s *Session) Send(ctx context.Context, input string, opts ...agent.RunOption) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// An empty ledger means a fresh run, which picks up the agent's
	// system prompt. A template would suppress it.
	if s.conv.Len() > 0 {
		opts = append(opts, agent.WithConversation(s.conv))
	}
	result, err := s.runner.Invoke(ctx, input, opts...)
	if err != nil {
		return "", err
	}

	s.conv = result.Conversation
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, s.key, s.conv); err != nil {
			return "", err
		}
	}
	return result.FinalOutput, nil
}

// History returns a copy of the session's message ledger.
func (s *Session) History() []runloop.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Messages()
}

// Len returns the number of messages in the session's ledger.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Len()
}

// Reset clears the session's ledger. A persistent session also deletes its
// stored snapshot.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conv = runloop.NewConversation()
	if s.sessions != nil {
		return s.sessions.Delete(ctx, s.key)
	}
	return nil
}
