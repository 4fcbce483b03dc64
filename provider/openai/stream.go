package openai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"

	"github.com/lattice-ai/runloop"
)

// toolCallState accumulates one streamed tool call keyed by choice index.
type toolCallState struct {
	itemID string
	callID string
	name   string
	args   strings.Builder
}

// Stream performs one streaming model turn. The returned channel carries the
// normalized provider event sequence and closes when the turn ends, whether
// it completed or failed.
func (c *Client) Stream(ctx context.Context, req runloop.Request) (<-chan runloop.ProviderEvent, error) {
	params := c.params(req)
	params.StreamOptions = openai.ChatCompletionStreamOptionsParam{
		IncludeUsage: openai.Bool(true),
	}

	sdkStream := c.client.Chat.Completions.NewStreaming(ctx, params)
	ch := make(chan runloop.ProviderEvent)

	go func() {
		defer close(ch)

		emit := func(ev runloop.ProviderEvent) bool {
			select {
			case ch <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		var acc openai.ChatCompletionAccumulator
		var responseID string
		created := false

		var textID string
		var textBuf strings.Builder
		textOpen := false

		tools := make(map[int64]*toolCallState)
		var toolOrder []int64

		for sdkStream.Next() {
			chunk := sdkStream.Current()
			acc.AddChunk(chunk)

			if !created {
				responseID = chunk.ID
				created = true
				if !emit(runloop.ProviderEvent{
					Type:       runloop.EventResponseCreated,
					ResponseID: responseID,
				}) {
					return
				}
			}

			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta

			if delta.Content != "" {
				if !textOpen {
					textOpen = true
					textID = responseID + "#text"
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputItemAdded,
						ResponseID: responseID,
						ItemID:     textID,
						Item:       &runloop.OutputItem{Kind: runloop.OutputMessage, ID: textID},
					}) {
						return
					}
				}
				textBuf.WriteString(delta.Content)
				if !emit(runloop.ProviderEvent{
					Type:       runloop.EventOutputTextDelta,
					ResponseID: responseID,
					ItemID:     textID,
					Delta:      delta.Content,
				}) {
					return
				}
			}

			for _, tc := range delta.ToolCalls {
				st, ok := tools[tc.Index]
				if !ok {
					st = &toolCallState{
						itemID: tc.ID,
						callID: tc.ID,
						name:   tc.Function.Name,
					}
					tools[tc.Index] = st
					toolOrder = append(toolOrder, tc.Index)
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputItemAdded,
						ResponseID: responseID,
						ItemID:     st.itemID,
						Item: &runloop.OutputItem{
							Kind:   runloop.OutputFunctionCall,
							ID:     st.itemID,
							Name:   st.name,
							CallID: st.callID,
						},
					}) {
						return
					}
				} else if st.name == "" && tc.Function.Name != "" {
					st.name = tc.Function.Name
				}
				if tc.Function.Arguments != "" {
					st.args.WriteString(tc.Function.Arguments)
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventFunctionCallArgumentsDelta,
						ResponseID: responseID,
						ItemID:     st.itemID,
						Delta:      tc.Function.Arguments,
					}) {
						return
					}
				}
			}
		}

		if err := sdkStream.Err(); err != nil {
			emit(runloop.ProviderEvent{
				Type:       runloop.EventResponseFailed,
				ResponseID: responseID,
				Code:       "stream_error",
				Message:    err.Error(),
			})
			return
		}

		if textOpen {
			text := textBuf.String()
			if !emit(runloop.ProviderEvent{
				Type:       runloop.EventOutputTextDone,
				ResponseID: responseID,
				ItemID:     textID,
				Text:       text,
			}) {
				return
			}
			if !emit(runloop.ProviderEvent{
				Type:       runloop.EventOutputItemDone,
				ResponseID: responseID,
				ItemID:     textID,
				Item:       &runloop.OutputItem{Kind: runloop.OutputMessage, ID: textID, Text: text},
			}) {
				return
			}
		}

		for _, idx := range toolOrder {
			st := tools[idx]
			args := st.args.String()
			if !emit(runloop.ProviderEvent{
				Type:       runloop.EventFunctionCallArgumentsDone,
				ResponseID: responseID,
				ItemID:     st.itemID,
				Arguments:  args,
			}) {
				return
			}
			if !emit(runloop.ProviderEvent{
				Type:       runloop.EventOutputItemDone,
				ResponseID: responseID,
				ItemID:     st.itemID,
				Item: &runloop.OutputItem{
					Kind:      runloop.OutputFunctionCall,
					ID:        st.itemID,
					Name:      st.name,
					Arguments: args,
					CallID:    st.callID,
				},
			}) {
				return
			}
		}

		emit(runloop.ProviderEvent{
			Type:       runloop.EventResponseCompleted,
			ResponseID: responseID,
			Usage: &runloop.Usage{
				InputTokens:  int(acc.Usage.PromptTokens),
				OutputTokens: int(acc.Usage.CompletionTokens),
			},
		})
	}()

	return ch, nil
}
