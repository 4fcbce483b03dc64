package openai

import (
	"encoding/json"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"github.com/lattice-ai/runloop"
)

// convertInput maps wire items onto chat messages. Consecutive function call
// items collapse into a single assistant message, which is the shape the
// Chat Completions API requires.
func convertInput(items []runloop.WireItem) []openai.ChatCompletionMessageParamUnion {
	var result []openai.ChatCompletionMessageParamUnion

	var pendingCalls []openai.ChatCompletionMessageToolCallParam
	flush := func() {
		if len(pendingCalls) == 0 {
			return
		}
		assistantMsg := openai.ChatCompletionAssistantMessageParam{
			ToolCalls: pendingCalls,
		}
		result = append(result, openai.ChatCompletionMessageParamUnion{
			OfAssistant: &assistantMsg,
		})
		pendingCalls = nil
	}

	for _, item := range items {
		if item.Type != runloop.WireFunctionCall {
			flush()
		}
		switch item.Type {
		case runloop.WireInputText:
			text := wireText(item)
			if item.Role == string(runloop.RoleSystem) {
				result = append(result, openai.SystemMessage(text))
			} else {
				result = append(result, openai.UserMessage(text))
			}
		case runloop.WireOutputText:
			result = append(result, openai.AssistantMessage(wireText(item)))
		case runloop.WireFunctionCall:
			pendingCalls = append(pendingCalls, openai.ChatCompletionMessageToolCallParam{
				ID: item.CallID,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      item.Name,
					Arguments: item.Arguments,
				},
			})
		case runloop.WireFunctionCallOutput:
			result = append(result, openai.ToolMessage(item.Output, item.CallID))
		}
	}
	flush()
	return result
}

func wireText(item runloop.WireItem) string {
	if len(item.Content) == 0 {
		return ""
	}
	return item.Content[0].Text
}

func convertTools(tools []runloop.ToolSchema) []openai.ChatCompletionToolParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]openai.ChatCompletionToolParam, len(tools))
	for i, t := range tools {
		var params shared.FunctionParameters
		if len(t.Parameters) > 0 {
			json.Unmarshal(t.Parameters, &params)
		}
		fn := shared.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openai.String(t.Description),
			Parameters:  params,
		}
		if t.Strict != nil {
			fn.Strict = openai.Bool(*t.Strict)
		}
		result[i] = openai.ChatCompletionToolParam{Function: fn}
	}
	return result
}

func convertToolChoice(choice runloop.ToolChoice) openai.ChatCompletionToolChoiceOptionUnionParam {
	switch choice {
	case runloop.ToolChoiceNone:
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("none"),
		}
	case runloop.ToolChoiceRequired:
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("required"),
		}
	default:
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		}
	}
}
