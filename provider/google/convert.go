package google

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/lattice-ai/runloop"
)

// functionCallItem projects a FunctionCall part, synthesizing a stable call
// id when the API omits one.
func functionCallItem(fc *genai.FunctionCall, index int) runloop.OutputItem {
	id := fc.ID
	if id == "" {
		id = fmt.Sprintf("call_%d_%s", index, fc.Name)
	}
	args, _ := json.Marshal(fc.Args)
	return runloop.OutputItem{
		Kind:      runloop.OutputFunctionCall,
		ID:        id,
		Name:      fc.Name,
		Arguments: string(args),
		CallID:    id,
	}
}

// convertInput maps wire items onto genai contents. System items are joined
// into the system instruction string. Tool outputs are sent back as
// FunctionResponse parts on the user side.
func convertInput(items []runloop.WireItem) ([]*genai.Content, string) {
	var contents []*genai.Content
	system := ""

	// Call names are needed to pair outputs with FunctionResponse parts.
	callNames := make(map[string]string)

	for _, item := range items {
		switch item.Type {
		case runloop.WireInputText:
			text := wireText(item)
			if item.Role == string(runloop.RoleSystem) {
				if system != "" {
					system += "\n\n"
				}
				system += text
				continue
			}
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: text}},
			})
		case runloop.WireOutputText:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: wireText(item)}},
			})
		case runloop.WireFunctionCall:
			var args map[string]any
			json.Unmarshal([]byte(item.Arguments), &args)
			callNames[item.CallID] = item.Name
			contents = append(contents, &genai.Content{
				Role: genai.RoleModel,
				Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{
					ID:   item.CallID,
					Name: item.Name,
					Args: args,
				}}},
			})
		case runloop.WireFunctionCallOutput:
			contents = append(contents, &genai.Content{
				Role: genai.RoleUser,
				Parts: []*genai.Part{{FunctionResponse: &genai.FunctionResponse{
					ID:       item.CallID,
					Name:     callNames[item.CallID],
					Response: map[string]any{"output": item.Output},
				}}},
			})
		}
	}

	return contents, system
}

func wireText(item runloop.WireItem) string {
	if len(item.Content) == 0 {
		return ""
	}
	return item.Content[0].Text
}

func convertTools(tools []runloop.ToolSchema) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	funcs := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		funcs[i] = &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  convertJSONSchema(t.Parameters),
		}
	}

	return []*genai.Tool{{FunctionDeclarations: funcs}}
}

func convertToolChoice(choice runloop.ToolChoice) *genai.ToolConfig {
	switch choice {
	case runloop.ToolChoiceNone:
		return &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeNone,
			},
		}
	case runloop.ToolChoiceRequired:
		return &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAny,
			},
		}
	default:
		return &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAuto,
			},
		}
	}
}

// convertJSONSchema converts JSON Schema to the genai Schema shape.
func convertJSONSchema(schemaJSON json.RawMessage) *genai.Schema {
	if len(schemaJSON) == 0 {
		return nil
	}

	var schema map[string]any
	if err := json.Unmarshal(schemaJSON, &schema); err != nil {
		return nil
	}

	return convertSchemaObject(schema)
}

func convertSchemaObject(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}

	result := &genai.Schema{}

	if typeVal, ok := schema["type"].(string); ok {
		switch typeVal {
		case "string":
			result.Type = genai.TypeString
		case "number":
			result.Type = genai.TypeNumber
		case "integer":
			result.Type = genai.TypeInteger
		case "boolean":
			result.Type = genai.TypeBoolean
		case "array":
			result.Type = genai.TypeArray
		case "object":
			result.Type = genai.TypeObject
		}
	}

	if desc, ok := schema["description"].(string); ok {
		result.Description = desc
	}

	if enumVal, ok := schema["enum"].([]any); ok {
		for _, e := range enumVal {
			if s, ok := e.(string); ok {
				result.Enum = append(result.Enum, s)
			}
		}
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		result.Properties = make(map[string]*genai.Schema)
		for name, propSchema := range props {
			if propMap, ok := propSchema.(map[string]any); ok {
				result.Properties[name] = convertSchemaObject(propMap)
			}
		}
	}

	if required, ok := schema["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				result.Required = append(result.Required, s)
			}
		}
	}

	if items, ok := schema["items"].(map[string]any); ok {
		result.Items = convertSchemaObject(items)
	}

	return result
}
