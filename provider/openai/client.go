package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lattice-ai/runloop"
)

const DefaultModel = "gpt-4o"

// Client wraps the OpenAI SDK to implement runloop.Model.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int64
	temperature *float64
}

// New creates a new OpenAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		client: &client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the OpenAI client.
type ClientOption func(*Client)

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
	resp, err := c.client.Chat.Completions.New(ctx, c.params(req))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, runloop.NewProviderError("empty_response", "response contained no choices", false, nil)
	}

	msg := resp.Choices[0].Message
	out := &runloop.Response{
		ID: resp.ID,
		Usage: runloop.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}
	if msg.Content != "" {
		out.Output = append(out.Output, runloop.OutputItem{
			Kind: runloop.OutputMessage,
			ID:   resp.ID + "#text",
			Text: msg.Content,
		})
	}
	for _, tc := range msg.ToolCalls {
		out.Output = append(out.Output, runloop.OutputItem{
			Kind:      runloop.OutputFunctionCall,
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
			CallID:    tc.ID,
		})
	}
	return out, nil
}

// params projects a runloop request onto the SDK request shape.
func (c *Client) params(req runloop.Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: convertInput(req.Input),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(c.maxTokens)
	}
	if c.temperature != nil {
		params.Temperature = openai.Float(*c.temperature)
	}
	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
		params.ToolChoice = convertToolChoice(req.ToolChoice)
		if !req.ParallelToolCalls {
			params.ParallelToolCalls = openai.Bool(false)
		}
	}
	return params
}

var _ runloop.Model = (*Client)(nil)
