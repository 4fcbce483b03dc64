// Command aguiserver is a reference AG-UI HTTP server that exposes a
// runloop agent over Server-Sent Events (SSE). It uses only the standard
// library for HTTP; the AG-UI SDK provides the event encoding.
//
// Configuration is via environment variables:
//
//	AGUI_PORT          - Server port (default: 8080)
//	RUNLOOP_PROVIDER   - Provider: anthropic, openai, or google (required)
//	RUNLOOP_MAX_ITER   - Max agent iterations (default: 10)
//	ANTHROPIC_API_KEY  - Anthropic API key
//	OPENAI_API_KEY     - OpenAI API key
//	GOOGLE_API_KEY     - Google API key
//
// Usage:
//
//	RUNLOOP_PROVIDER=anthropic go run ./cmd/aguiserver
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/agent"
	"github.com/lattice-ai/runloop/provider/anthropic"
	"github.com/lattice-ai/runloop/provider/google"
	"github.com/lattice-ai/runloop/provider/openai"
	"github.com/lattice-ai/runloop/retry"
)

func main() {
	godotenv.Load()

	port := os.Getenv("AGUI_PORT")
	if port == "" {
		port = "8080"
	}
	maxIter := 10
	if v := os.Getenv("RUNLOOP_MAX_ITER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid RUNLOOP_MAX_ITER: %v", err)
		}
		maxIter = n
	}

	model, err := createModel(os.Getenv("RUNLOOP_PROVIDER"))
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	runner, err := agent.New(model, demoRegistry(),
		agent.WithMaxIterations(maxIter),
		agent.WithRetry(retry.DefaultConfig()),
	)
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/agent", corsMiddleware(NewAgentHandler(runner)))
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("AG-UI server starting",
		"port", port,
		"endpoint", "POST /api/agent",
		"health", "GET /health",
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	slog.Info("server stopped")
}

func createModel(provider string) (runloop.Model, error) {
	switch provider {
	case "anthropic":
		return anthropic.New(), nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return openai.New(key), nil
	case "google":
		key := os.Getenv("GOOGLE_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
		}
		return google.New(context.Background(), key)
	case "":
		return nil, fmt.Errorf("RUNLOOP_PROVIDER is not set")
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
