package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/lattice-ai/runloop"
)

// blockState accumulates one streamed content block keyed by block index.
type blockState struct {
	kind   runloop.OutputKind
	itemID string
	callID string
	name   string
	buf    strings.Builder
}

// Stream performs one streaming model turn. The returned channel carries the
// normalized provider event sequence and closes when the turn ends, whether
// it completed or failed.
func (c *Client) Stream(ctx context.Context, req runloop.Request) (<-chan runloop.ProviderEvent, error) {
	sdkStream := c.client.Messages.NewStreaming(ctx, c.params(req))
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
		usage := runloop.Usage{}
		blocks := make(map[int64]*blockState)

		for sdkStream.Next() {
			event := sdkStream.Current()

			switch ev := event.AsAny().(type) {
			case anthropic.MessageStartEvent:
				responseID = ev.Message.ID
				usage.InputTokens = int(ev.Message.Usage.InputTokens)
				if !emit(runloop.ProviderEvent{
					Type:       runloop.EventResponseCreated,
					ResponseID: responseID,
				}) {
					return
				}

			case anthropic.ContentBlockStartEvent:
				st := &blockState{}
				switch start := ev.ContentBlock.AsAny().(type) {
				case anthropic.ToolUseBlock:
					st.kind = runloop.OutputFunctionCall
					st.itemID = start.ID
					st.callID = start.ID
					st.name = start.Name
				case anthropic.TextBlock:
					st.kind = runloop.OutputMessage
					st.itemID = blockItemID(responseID, int(ev.Index))
				default:
					continue
				}
				blocks[ev.Index] = st
				if !emit(runloop.ProviderEvent{
					Type:       runloop.EventOutputItemAdded,
					ResponseID: responseID,
					ItemID:     st.itemID,
					Item: &runloop.OutputItem{
						Kind:   st.kind,
						ID:     st.itemID,
						Name:   st.name,
						CallID: st.callID,
					},
				}) {
					return
				}

			case anthropic.ContentBlockDeltaEvent:
				st := blocks[ev.Index]
				if st == nil {
					continue
				}
				switch delta := ev.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					if delta.Text == "" {
						continue
					}
					st.buf.WriteString(delta.Text)
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputTextDelta,
						ResponseID: responseID,
						ItemID:     st.itemID,
						Delta:      delta.Text,
					}) {
						return
					}
				case anthropic.InputJSONDelta:
					if delta.PartialJSON == "" {
						continue
					}
					st.buf.WriteString(delta.PartialJSON)
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventFunctionCallArgumentsDelta,
						ResponseID: responseID,
						ItemID:     st.itemID,
						Delta:      delta.PartialJSON,
					}) {
						return
					}
				}

			case anthropic.ContentBlockStopEvent:
				st := blocks[ev.Index]
				if st == nil {
					continue
				}
				delete(blocks, ev.Index)
				switch st.kind {
				case runloop.OutputMessage:
					text := st.buf.String()
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputTextDone,
						ResponseID: responseID,
						ItemID:     st.itemID,
						Text:       text,
					}) {
						return
					}
					if !emit(runloop.ProviderEvent{
						Type:       runloop.EventOutputItemDone,
						ResponseID: responseID,
						ItemID:     st.itemID,
						Item:       &runloop.OutputItem{Kind: st.kind, ID: st.itemID, Text: text},
					}) {
						return
					}
				case runloop.OutputFunctionCall:
					args := st.buf.String()
					if args == "" {
						args = "{}"
					}
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
							Kind:      st.kind,
							ID:        st.itemID,
							Name:      st.name,
							Arguments: args,
							CallID:    st.callID,
						},
					}) {
						return
					}
				}

			case anthropic.MessageDeltaEvent:
				usage.OutputTokens = int(ev.Usage.OutputTokens)
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

		emit(runloop.ProviderEvent{
			Type:       runloop.EventResponseCompleted,
			ResponseID: responseID,
			Usage:      &usage,
		})
	}()

	return ch, nil
}
