package main

import (
	"context"
	"fmt"

	"github.com/lattice-ai/runloop/tool"
)

// demoRegistry registers the calculator and weather tools used by both run
// modes.
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
			Handler: calculateHandler,
		},
		tool.Spec{
			Name:        "get_weather",
			Description: "Get the current weather for a city",
			Params: []tool.Param{
				{Name: "city", Type: tool.TypeString, Description: "City name, e.g. Oslo"},
				{Name: "unit", Type: tool.TypeString, Description: "Temperature unit",
					Enum: []any{"celsius", "fahrenheit"}},
			},
			Handler: weatherHandler,
		},
	)
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

// weatherHandler returns canned weather so the demo works without an
// external weather API.
func weatherHandler(ctx context.Context, args tool.Args, rt *tool.Runtime) (string, error) {
	city := args.String("city")
	unit := args.String("unit")

	temp := "18°C"
	if unit == "fahrenheit" {
		temp = "64°F"
	}
	if user := rt.String("user_id"); user != "" {
		return fmt.Sprintf("Weather in %s for %s: partly cloudy, %s", city, user, temp), nil
	}
	return fmt.Sprintf("Weather in %s: partly cloudy, %s", city, temp), nil
}
