// Command demo runs a tool-calling agent against whichever provider has an
// API key configured, first as a blocking call and then streaming.
//
// Usage:
//
//	go run ./cmd/demo "What is 23.5 times 4, and how is the weather in Oslo?"
//
// Set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY (checked in that
// order). Keys can live in a .env file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lattice-ai/runloop"
	"github.com/lattice-ai/runloop/agent"
	"github.com/lattice-ai/runloop/provider/anthropic"
	"github.com/lattice-ai/runloop/provider/google"
	"github.com/lattice-ai/runloop/provider/openai"
	"github.com/lattice-ai/runloop/retry"
	"github.com/lattice-ai/runloop/stream"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	input := "What is 23.5 times 4, and how is the weather in Oslo?"
	if len(os.Args) > 1 {
		input = strings.Join(os.Args[1:], " ")
	}

	model, label, err := pickModel(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Provider: %s\n\n", label)

	runner, err := agent.New(model, demoRegistry(),
		agent.WithSystemPrompt("You are a concise assistant. Use the available tools when they help."),
		agent.WithMaxIterations(8),
		agent.WithRetry(retry.DefaultConfig()),
	)
	if err != nil {
		log.Fatal(err)
	}

	runBlocking(ctx, runner, input)
	runStreaming(ctx, runner, input)
}

// pickModel selects the first provider with a configured API key.
func pickModel(ctx context.Context) (runloop.Model, string, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return anthropic.New(anthropic.WithAPIKey(key)), "Anthropic", nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return openai.New(key), "OpenAI", nil
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c, err := google.New(ctx, key)
		if err != nil {
			return nil, "", err
		}
		return c, "Google", nil
	}
	return nil, "", fmt.Errorf("no API key found; set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY")
}

func runBlocking(ctx context.Context, runner *agent.Agent, input string) {
	fmt.Println("=== Blocking run ===")
	fmt.Printf("User: %s\n", input)

	result, err := runner.Invoke(ctx, input,
		agent.WithRuntimeValues(map[string]any{"user_id": "demo-user"}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	for _, item := range result.Items {
		switch item.Kind {
		case agent.ItemToolCall:
			fmt.Printf("  [tool call] %s(%s)\n", item.Name, item.Arguments)
		case agent.ItemToolCallOutput:
			fmt.Printf("  [tool output] %s -> %s\n", item.Name, item.Output)
		}
	}
	fmt.Printf("Assistant: %s\n\n", result.FinalOutput)
}

func runStreaming(ctx context.Context, runner *agent.Agent, input string) {
	fmt.Println("=== Streaming run ===")
	fmt.Printf("User: %s\n", input)

	events, err := runner.Stream(ctx, input,
		agent.WithRuntimeValues(map[string]any{"user_id": "demo-user"}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Print("Assistant: ")
	for e := range events {
		switch {
		case e.Kind == stream.KindText && e.Phase == stream.PhaseDelta:
			fmt.Print(e.Text)
		case e.Kind == stream.KindToolCall && e.Phase == stream.PhaseFinal:
			fmt.Printf("\n  [tool call] %s(%s)\n", e.ToolName, e.Arguments)
		case e.Kind == stream.KindToolOutput && e.Phase == stream.PhaseFinal:
			fmt.Printf("  [tool output] %s -> %s\n", e.ToolName, e.Output)
		case e.Kind == stream.KindLifecycle && e.Phase == stream.PhaseFinal:
			if e.Usage != nil {
				fmt.Printf("\n  [tokens: %d in, %d out]\n", e.Usage.InputTokens, e.Usage.OutputTokens)
			}
		case e.Kind == stream.KindError:
			fmt.Fprintf(os.Stderr, "\nStream error (%s): %s\n", e.Code, e.Message)
		}
	}
	fmt.Println()
}
