package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lattice-ai/runloop"
)

const DefaultModel = "claude-sonnet-4-20250514"

const defaultMaxTokens = 4096

// Client wraps the Anthropic SDK to implement runloop.Model.
type Client struct {
	client      *anthropic.Client
	model       string
	maxTokens   int64
	temperature *float64
}

// New creates a new Anthropic client.
// It reads the API key from the ANTHROPIC_API_KEY environment variable.
func New(opts ...ClientOption) *Client {
	c := &Client{
		model:     DefaultModel,
		maxTokens: defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		client := anthropic.NewClient()
		c.client = &client
	}
	return c
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithAPIKey sets the API key explicitly instead of using the environment variable.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		client := anthropic.NewClient(option.WithAPIKey(key))
		c.client = &client
	}
}

// WithModel sets the model for requests.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithMaxTokens caps the number of output tokens per response.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.maxTokens = int64(n)
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.temperature = &t
	}
}

// Respond performs one blocking model turn.
func (c *Client) Respond(ctx context.Context, req runloop.Request) (*runloop.Response, error) {
	resp, err := c.client.Messages.New(ctx, c.params(req))
	if err != nil {
		return nil, err
	}

	out := &runloop.Response{
		ID: resp.ID,
		Usage: runloop.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}
	for i, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Output = append(out.Output, runloop.OutputItem{
				Kind: runloop.OutputMessage,
				ID:   blockItemID(resp.ID, i),
				Text: block.Text,
			})
		case "tool_use":
			out.Output = append(out.Output, runloop.OutputItem{
				Kind:      runloop.OutputFunctionCall,
				ID:        block.ID,
				Name:      block.Name,
				Arguments: string(block.Input),
				CallID:    block.ID,
			})
		case "thinking":
			out.Output = append(out.Output, runloop.OutputItem{
				Kind: runloop.OutputReasoning,
				ID:   blockItemID(resp.ID, i),
				Text: block.Thinking,
			})
		}
	}
	return out, nil
}

// params projects a runloop request onto the SDK request shape.
func (c *Client) params(req runloop.Request) anthropic.MessageNewParams {
	msgs, system := convertInput(req.Input)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if c.temperature != nil {
		params.Temperature = anthropic.Float(*c.temperature)
	}
	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
		params.ToolChoice = convertToolChoice(req.ToolChoice, req.ParallelToolCalls)
	}
	return params
}

var _ runloop.Model = (*Client)(nil)
