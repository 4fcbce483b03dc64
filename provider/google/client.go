package google

import (
	"context"

	"google.golang.org/genai"

	"github.com/lattice-ai/runloop"
)

const DefaultModel = "gemini-2.0-flash"

// Client wraps the Google GenAI SDK to implement runloop.Model.
type Client struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature *float32
}

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	c := &Client{
		client: client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClientOption configures the Google client.
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
		c.maxTokens = int32(n)
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) {
		temp := float32(t)
		c.temperature = &temp
	}
}

// Respond performs one blocking model turn.
func (c *Client) Respond(ctx context.Context, req runloop.Request) (*runloop.Response, error) {
	contents, config := c.params(req)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, err
	}

	out := &runloop.Response{ID: resp.ResponseID}
	if resp.UsageMetadata != nil {
		out.Usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.Usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}

	text := ""
	for i, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
		if part.FunctionCall != nil {
			item := functionCallItem(part.FunctionCall, i)
			out.Output = append(out.Output, item)
		}
	}
	if text != "" {
		out.Output = append(out.Output, runloop.OutputItem{
			Kind: runloop.OutputMessage,
			ID:   resp.ResponseID + "#text",
			Text: text,
		})
	}
	return out, nil
}

// params projects a runloop request onto the SDK request shape.
func (c *Client) params(req runloop.Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents, system := convertInput(req.Input)
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if c.maxTokens > 0 {
		config.MaxOutputTokens = c.maxTokens
	}
	if c.temperature != nil {
		config.Temperature = c.temperature
	}
	if len(req.Tools) > 0 {
		config.Tools = convertTools(req.Tools)
		config.ToolConfig = convertToolChoice(req.ToolChoice)
	}
	return contents, config
}

var _ runloop.Model = (*Client)(nil)
