// Command mcp is a reference MCP server that exposes runloop tools over
// stdio, so MCP clients can discover and call them.
//
// Usage:
//
//	go run ./cmd/mcp
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lattice-ai/runloop/mcp"
	"github.com/lattice-ai/runloop/tool"
)

func main() {
	registry := tool.NewRegistry().Add(
		tool.Spec{
			Name:        "echo",
			Description: "Echo back the input text",
			Params: []tool.Param{
				{Name: "text", Type: tool.TypeString, Description: "The text to echo back"},
			},
			Handler: echoHandler,
		},
		tool.Spec{
			Name:        "time",
			Description: "Get the current time",
			Params: []tool.Param{
				{Name: "format", Type: tool.TypeString, Description: "Time format",
					Enum: []any{"rfc3339", "unix", "human"}},
			},
			Handler: timeHandler,
		},
		tool.Spec{
			Name:        "calculate",
			Description: "Perform basic arithmetic",
			Params: []tool.Param{
				{Name: "operation", Type: tool.TypeString, Description: "The operation to perform",
					Enum: []any{"add", "subtract", "multiply", "divide"}},
				{Name: "a", Type: tool.TypeFloat, Description: "First number"},
				{Name: "b", Type: tool.TypeFloat, Description: "Second number"},
			},
			Handler: calculateHandler,
		},
	)

	if err := mcp.ServeStdio(registry,
		mcp.WithName("runloop-mcp-example"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Fatal(err)
	}
}

func echoHandler(ctx context.Context, args tool.Args, _ *tool.Runtime) (string, error) {
	return args.String("text"), nil
}

func timeHandler(ctx context.Context, args tool.Args, _ *tool.Runtime) (string, error) {
	now := time.Now()

	switch strings.ToLower(args.String("format")) {
	case "rfc3339":
		return now.Format(time.RFC3339), nil
	case "unix":
		return fmt.Sprintf("%d", now.Unix()), nil
	default:
		return now.Format("Monday, January 2, 2006 at 3:04 PM MST"), nil
	}
}

func calculateHandler(ctx context.Context, args tool.Args, _ *tool.Runtime) (string, error) {
	a := args.Float("a")
	b := args.Float("b")

	var result float64
	switch args.String("operation") {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			return "", fmt.Errorf("cannot divide by zero")
		}
		result = a / b
	}

	return fmt.Sprintf("%.6g", result), nil
}
