package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/lattice-ai/runloop"
)

// blockItemID names content blocks that carry no provider id of their own.
func blockItemID(responseID string, index int) string {
	return fmt.Sprintf("%s#%d", responseID, index)
}

// convertInput maps wire items onto Messages API params. System items become
// system blocks. Consecutive items of the same effective role collapse into
// one message: assistant text plus tool_use blocks on the assistant side,
// tool_result blocks as user messages on the other.
func convertInput(items []runloop.WireItem) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var result []anthropic.MessageParam
	var system []anthropic.TextBlockParam

	var runRole anthropic.MessageParamRole
	var runBlocks []anthropic.ContentBlockParamUnion
	flush := func() {
		if len(runBlocks) == 0 {
			return
		}
		result = append(result, anthropic.MessageParam{Role: runRole, Content: runBlocks})
		runBlocks = nil
	}
	appendBlock := func(role anthropic.MessageParamRole, block anthropic.ContentBlockParamUnion) {
		if len(runBlocks) > 0 && runRole != role {
			flush()
		}
		runRole = role
		runBlocks = append(runBlocks, block)
	}

	for _, item := range items {
		switch item.Type {
		case runloop.WireInputText:
			text := wireText(item)
			if text == "" {
				continue
			}
			if item.Role == string(runloop.RoleSystem) {
				system = append(system, anthropic.TextBlockParam{Text: text})
				continue
			}
			appendBlock(anthropic.MessageParamRoleUser, anthropic.NewTextBlock(text))
		case runloop.WireOutputText:
			if text := wireText(item); text != "" {
				appendBlock(anthropic.MessageParamRoleAssistant, anthropic.NewTextBlock(text))
			}
		case runloop.WireFunctionCall:
			var input any
			json.Unmarshal([]byte(item.Arguments), &input)
			appendBlock(anthropic.MessageParamRoleAssistant,
				anthropic.NewToolUseBlock(item.CallID, input, item.Name))
		case runloop.WireFunctionCallOutput:
			appendBlock(anthropic.MessageParamRoleUser,
				anthropic.NewToolResultBlock(item.CallID, item.Output, false))
		}
	}
	flush()

	return result, system
}

func wireText(item runloop.WireItem) string {
	if len(item.Content) == 0 {
		return ""
	}
	return item.Content[0].Text
}

func convertTools(tools []runloop.ToolSchema) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		var schema map[string]any
		if len(t.Parameters) > 0 {
			json.Unmarshal(t.Parameters, &schema)
		}

		var required []string
		if reqVal, ok := schema["required"].([]any); ok {
			for _, r := range reqVal {
				if s, ok := r.(string); ok {
					required = append(required, s)
				}
			}
		}

		toolParam := anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: schema["properties"],
				Required:   required,
			},
		}
		result[i] = anthropic.ToolUnionParam{OfTool: &toolParam}
	}
	return result
}

func convertToolChoice(choice runloop.ToolChoice, parallel bool) anthropic.ToolChoiceUnionParam {
	disable := anthropic.Bool(!parallel)
	switch choice {
	case runloop.ToolChoiceNone:
		return anthropic.ToolChoiceUnionParam{
			OfNone: &anthropic.ToolChoiceNoneParam{},
		}
	case runloop.ToolChoiceRequired:
		return anthropic.ToolChoiceUnionParam{
			OfAny: &anthropic.ToolChoiceAnyParam{DisableParallelToolUse: disable},
		}
	default:
		return anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{DisableParallelToolUse: disable},
		}
	}
}
