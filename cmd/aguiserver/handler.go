package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/agent"
	"github.com/lattice-ai/runloop/agui"
)

// RunRequest is the request body for an agent run. Messages seed the
// conversation; Input is the new user turn.
type RunRequest struct {
	ThreadID string               `json:"threadId"`
	RunID    string               `json:"runId"`
	Input    string               `json:"input"`
	Messages []aguievents.Message `json:"messages"`
}

// AgentHandler handles AG-UI agent requests over SSE.
type AgentHandler struct {
	runner *agent.Agent
}

// NewAgentHandler creates a new handler for the given agent.
func NewAgentHandler(runner *agent.Agent) *AgentHandler {
	return &AgentHandler{runner: runner}
}

// ServeHTTP handles POST requests to run the agent and stream events via SSE.
func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid request body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Input == "" {
		http.Error(w, "input is required", http.StatusBadRequest)
		return
	}

	log := slog.With("run_id", req.RunID, "thread_id", req.ThreadID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var runOpts []agent.RunOption
	if len(req.Messages) > 0 {
		template, err := runloop.NewConversationFrom(agui.ToMessages(req.Messages))
		if err != nil {
			http.Error(w, "invalid messages: "+err.Error(), http.StatusBadRequest)
			return
		}
		runOpts = append(runOpts, agent.WithConversation(template))
	}

	mapper := agui.NewMapper(req.ThreadID, req.RunID)

	events, err := h.runner.Stream(r.Context(), req.Input, runOpts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info("request started", "message_count", len(req.Messages))

	var eventCount int
	if err := writeSSE(w, flusher, mapper.RunStarted()); err != nil {
		log.Error("failed to write SSE event", "error", err)
		return
	}

	failed := false
	for e := range events {
		for _, aguiEvent := range mapper.MapEvent(e) {
			eventCount++
			if err := writeSSE(w, flusher, aguiEvent); err != nil {
				log.Error("failed to write SSE event", "error", err, "event_type", aguiEvent.Type())
				return
			}
			if aguiEvent.Type() == aguievents.EventTypeRunError {
				failed = true
			}
		}
	}

	if !failed {
		if err := writeSSE(w, flusher, mapper.RunFinished()); err != nil {
			log.Error("failed to write SSE event", "error", err)
			return
		}
	}

	log.Info("request completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"events_sent", eventCount,
	)
}

// writeSSE writes an AG-UI event in SSE format.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev aguievents.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type(), string(data)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	flusher.Flush()
	return nil
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
