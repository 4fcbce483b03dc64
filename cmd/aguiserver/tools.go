package main

import (
	"context"
	"fmt"

	"github.com/lattice-ai/runloop/tool"
)

// demoRegistry provides a small tool set so AG-UI frontends have something
// to exercise.
func demoRegistry() *tool.Registry {
	return tool.NewRegistry().Add(
		tool.Spec{
			Name:        "calculate",
			Description: "Perform basic arithmetic on two numbers",
			Params: []tool.Param{
				{Name: "operation", Type: tool.TypeString, Description: "The operation to perform",
					Enum: []any{"add", "subtract", "multiply", "divide"}},
				{Name: "a", Type: tool.TypeFloat, Description: "First operand"},
				{Name: "b", Type: tool.TypeFloat, Description: "Second operand"},
			},
			Handler: func(ctx context.Context, args tool.Args, _ *tool.Runtime) (string, error) {
				a := args.Float("a")
				b := args.Float("b")
				switch args.String("operation") {
				case "add":
					return fmt.Sprintf("%.6g", a+b), nil
				case "subtract":
					return fmt.Sprintf("%.6g", a-b), nil
				case "multiply":
					return fmt.Sprintf("%.6g", a*b), nil
				case "divide":
					if b == 0 {
						return "", fmt.Errorf("cannot divide by zero")
					}
					return fmt.Sprintf("%.6g", a/b), nil
				}
				return "", fmt.Errorf("unknown operation")
			},
		},
	)
}
