package google

import (
	"context"
	"strings"

	"github.com/lattice-ai/runloop"
)

// Stream performs one streaming model turn. Gemini delivers function calls
// whole, so each one is surfaced as an added item immediately followed by
// its final arguments. Text still arrives as deltas.
func (c *Client) Stream(ctx context.Context, req runloop.Request) (<-chan runloop.ProviderEvent, error) {
	contents, config := c.params(req)
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

		var responseID string
		created := false
		usage := runloop.Usage{}

		var textID string
		var textBuf strings.Builder
		textOpen := false
		callIndex := 0

		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, contents, config) {
			if err != nil {
				emit(runloop.ProviderEvent{
					Type:       runloop.EventResponseFailed,
					ResponseID: responseID,
					Code:       "stream_error",
					Message:    err.Error(),
				})
				return
			}

			if !created {
				responseID = resp.ResponseID
				created = true
				if !emit(runloop.ProviderEvent{
					Type:       runloop.EventResponseCreated,
					ResponseID: responseID,
				}) {
					return
				}
			}

			if resp.UsageMetadata != nil {
				usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
				usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
			}
			if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
				continue
			}

			for _, part := range resp.Candidates[0].Content.Parts {
				if part.Text != "" {
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
					textBuf.WriteString(part.Text)
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputTextDelta,
						ResponseID: responseID,
						ItemID:     textID,
						Delta:      part.Text,
					}) {
						return
					}
				}

				if part.FunctionCall != nil {
					item := functionCallItem(part.FunctionCall, callIndex)
					callIndex++
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputItemAdded,
						ResponseID: responseID,
						ItemID:     item.ID,
						Item: &runloop.OutputItem{
							Kind:   runloop.OutputFunctionCall,
							ID:     item.ID,
							Name:   item.Name,
							CallID: item.CallID,
						},
					}) {
						return
					}
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventFunctionCallArgumentsDone,
						ResponseID: responseID,
						ItemID:     item.ID,
						Arguments:  item.Arguments,
					}) {
						return
					}
					itemCopy := item
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputItemDone,
						ResponseID: responseID,
						ItemID:     item.ID,
						Item:       &itemCopy,
					}) {
						return
					}
				}
			}
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

		emit(runloop.ProviderEvent{
			Type:       runloop.EventResponseCompleted,
			ResponseID: responseID,
			Usage:      &usage,
		})
	}()

	return ch, nil
}
